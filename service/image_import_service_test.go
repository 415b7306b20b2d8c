package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vitrina/models"
)

func TestImportProductImagesAttachesByCode(t *testing.T) {
	drive := &fakeDrive{images: []models.DriveImage{
		{DriveFileID: "d1", FileName: "COL-1.jpg", ProductCode: "COL-1"},
		{DriveFileID: "d2", FileName: "COL-1_2.jpg", ProductCode: "COL-1", Position: 2},
		{DriveFileID: "d3", FileName: "ZZZ.png", ProductCode: "ZZZ"},
	}}
	products := &fakeProducts{byCode: map[string]*models.Product{"COL-1": {ID: "p1"}}}
	images := &fakeImages{}
	svc := NewImageImportService(drive, products, images)

	result, err := svc.ImportProductImages(context.Background(), "folder")
	require.NoError(t, err)

	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 2, result.Attached)
	assert.Equal(t, 0, result.Skipped)
	assert.Equal(t, []string{"ZZZ.png"}, result.Unmatched)
	require.Len(t, images.inserted, 2)
	assert.Equal(t, "p1", images.inserted[1].ProductID)
	assert.Equal(t, 2, images.inserted[1].Position)

	again, err := svc.ImportProductImages(context.Background(), "folder")
	require.NoError(t, err)
	assert.Equal(t, 0, again.Attached)
	assert.Equal(t, 2, again.Skipped)
}

func TestImportProductImagesListFailure(t *testing.T) {
	svc := NewImageImportService(&fakeDrive{listErr: errors.New("quota")}, &fakeProducts{}, &fakeImages{})

	_, err := svc.ImportProductImages(context.Background(), "folder")
	assert.ErrorContains(t, err, "quota")
}

func TestImportProductImagesRejectsInvalidFolderID(t *testing.T) {
	drive := &fakeDrive{}
	svc := NewImageImportService(drive, &fakeProducts{}, &fakeImages{})

	_, err := svc.ImportProductImages(context.Background(), "x' or name contains '")
	assert.ErrorIs(t, err, ErrInvalidFolderID)
	assert.Equal(t, 0, drive.lists)
}

func TestFolderQuery(t *testing.T) {
	query, err := folderQuery("1AbC_d-9")
	require.NoError(t, err)
	assert.Equal(t, "'1AbC_d-9' in parents and trashed=false", query)

	for _, id := range []string{"", "a'b", `a\b`, "a b", "carpeta/sub"} {
		_, err := folderQuery(id)
		assert.ErrorIs(t, err, ErrInvalidFolderID, id)
	}
}
