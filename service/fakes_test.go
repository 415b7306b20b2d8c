package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"vitrina/models"
	"vitrina/repository"
)

type fakeDrive struct {
	images    []models.DriveImage
	files     map[string][]byte
	listErr   error
	lists     int
	downloads int
}

func (f *fakeDrive) ListProductImages(ctx context.Context, folderID string) ([]models.DriveImage, error) {
	f.lists++
	return f.images, f.listErr
}

func (f *fakeDrive) DownloadImage(ctx context.Context, fileID string) ([]byte, error) {
	f.downloads++
	data, ok := f.files[fileID]
	if !ok {
		return nil, errors.New("file not found")
	}
	return data, nil
}

type fakeProducts struct {
	repository.ProductRepositoryInterface
	byCode map[string]*models.Product
}

func (f *fakeProducts) GetByCode(ctx context.Context, code string) (*models.Product, error) {
	p, ok := f.byCode[strings.ToUpper(code)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return p, nil
}

type fakeImages struct {
	byID     map[string]*models.ProductImage
	inserted []models.ProductImage
}

func (f *fakeImages) GetByID(ctx context.Context, id string) (*models.ProductImage, error) {
	img, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return img, nil
}

func (f *fakeImages) ExistsByDriveFileID(ctx context.Context, driveFileID string) (bool, error) {
	for _, img := range f.inserted {
		if img.DriveFileID == driveFileID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeImages) Insert(ctx context.Context, image *models.ProductImage) error {
	f.inserted = append(f.inserted, *image)
	return nil
}

type fakeCatalogs struct {
	repository.CatalogRepositoryInterface
	bySlug map[string]*models.Catalog
}

func (f *fakeCatalogs) GetBySlug(ctx context.Context, slug string) (*models.Catalog, error) {
	c, ok := f.bySlug[slug]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return c, nil
}

type fakeSessions struct {
	users    map[string]*models.AdminUser
	sessions map[string]*models.Session
}

func (f *fakeSessions) GetSession(ctx context.Context, token string) (*models.Session, error) {
	s, ok := f.sessions[token]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return s, nil
}

func (f *fakeSessions) CreateSession(ctx context.Context, session *models.Session) error {
	f.sessions[session.Token] = session
	return nil
}

func (f *fakeSessions) DeleteSession(ctx context.Context, token string) error {
	if _, ok := f.sessions[token]; !ok {
		return repository.ErrNotFound
	}
	delete(f.sessions, token)
	return nil
}

func (f *fakeSessions) GetUserByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	u, ok := f.users[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

type staticConfig struct {
	raw json.RawMessage
}

func (s staticConfig) Config() (json.RawMessage, bool) {
	return s.raw, s.raw != nil
}
