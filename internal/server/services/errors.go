package services

import "github.com/dmitrijs2005/skillswap/internal/common"

var errNoPhoto = common.WithDetail(common.ErrorNotFound, "User has no profile photo")
