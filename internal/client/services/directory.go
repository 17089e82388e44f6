package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/skillswap/internal/api"
	"github.com/dmitrijs2005/skillswap/internal/client/client"
	"github.com/dmitrijs2005/skillswap/internal/client/session"
	"github.com/dmitrijs2005/skillswap/internal/filex"
	"github.com/gabriel-vasile/mimetype"
)

// MaxPhotoSize caps profile photo uploads.
const MaxPhotoSize = 5 << 20

// DirectoryService covers the user directory and the session lifecycle.
//
// Register, Login, UpdateProfile and UploadPhoto change the session user on
// success; failures leave the session untouched.
type DirectoryService interface {
	Register(ctx context.Context, in api.UserCreate) (api.User, error)
	Login(ctx context.Context, email string) (api.User, error)
	Logout(ctx context.Context) error
	Search(ctx context.Context, skill, location, excludeID string) ([]api.User, error)
	Get(ctx context.Context, id string) (api.User, error)
	UpdateProfile(ctx context.Context, in api.UserUpdate) (api.User, error)
	SearchSkills(ctx context.Context, query string) ([]string, error)
	UploadPhoto(ctx context.Context, path string) (api.User, error)
	Ping(ctx context.Context) error
}

type directoryService struct {
	client  client.Client
	session *session.Session
}

func NewDirectoryService(c client.Client, s *session.Session) DirectoryService {
	return &directoryService{client: c, session: s}
}

func (d *directoryService) Register(ctx context.Context, in api.UserCreate) (api.User, error) {
	u, err := d.client.CreateUser(ctx, in)
	if err != nil {
		return api.User{}, err
	}
	if err := d.session.Persist(ctx, u); err != nil {
		return api.User{}, err
	}
	return u, nil
}

// Login matches email against every directory entry, private ones included.
func (d *directoryService) Login(ctx context.Context, email string) (api.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return api.User{}, ErrUserNotFound
	}

	users, err := d.client.SearchUsers(ctx, client.UserQuery{})
	if err != nil {
		return api.User{}, err
	}

	for _, u := range users {
		if strings.EqualFold(u.Email, email) {
			if err := d.session.Persist(ctx, u); err != nil {
				return api.User{}, err
			}
			return u, nil
		}
	}
	return api.User{}, ErrUserNotFound
}

func (d *directoryService) Logout(ctx context.Context) error {
	return d.session.Clear(ctx)
}

// Search lists public users matching skill and location, without excludeID.
func (d *directoryService) Search(ctx context.Context, skill, location, excludeID string) ([]api.User, error) {
	users, err := d.client.SearchUsers(ctx, client.UserQuery{
		Skill:      strings.TrimSpace(skill),
		Location:   strings.TrimSpace(location),
		PublicOnly: true,
	})
	if err != nil {
		return nil, err
	}

	out := make([]api.User, 0, len(users))
	for _, u := range users {
		if excludeID != "" && u.ID == excludeID {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

func (d *directoryService) Get(ctx context.Context, id string) (api.User, error) {
	return d.client.GetUser(ctx, id)
}

func (d *directoryService) UpdateProfile(ctx context.Context, in api.UserUpdate) (api.User, error) {
	id := d.session.UserID()
	if id == "" {
		return api.User{}, ErrNotLoggedIn
	}

	u, err := d.client.UpdateUser(ctx, id, in)
	if err != nil {
		return api.User{}, err
	}
	if err := d.session.Persist(ctx, u); err != nil {
		return api.User{}, err
	}
	return u, nil
}

func (d *directoryService) SearchSkills(ctx context.Context, query string) ([]string, error) {
	return d.client.SearchSkills(ctx, strings.TrimSpace(query))
}

// UploadPhoto stores the image at path as the current user's profile photo.
func (d *directoryService) UploadPhoto(ctx context.Context, path string) (api.User, error) {
	id := d.session.UserID()
	if id == "" {
		return api.User{}, ErrNotLoggedIn
	}

	data, err := filex.ReadLimited(path, MaxPhotoSize)
	if err != nil {
		return api.User{}, err
	}

	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return api.User{}, fmt.Errorf("%w: detected %s", ErrNotImage, mt.String())
	}

	target, err := d.client.PhotoUploadURL(ctx, id)
	if err != nil {
		return api.User{}, err
	}
	if err := d.client.UploadPhoto(ctx, target.UploadURL, mt.String(), data); err != nil {
		return api.User{}, err
	}

	return d.UpdateProfile(ctx, api.UserUpdate{ProfilePhoto: &target.Key})
}

func (d *directoryService) Ping(ctx context.Context) error {
	return d.client.Ping(ctx)
}
