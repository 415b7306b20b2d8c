package models

// DriveImage is an image file listed from a Google Drive folder
type DriveImage struct {
	DriveFileID string `json:"driveFileId"`
	FileName    string `json:"fileName"`
	ProductCode string `json:"productCode"`
	Position    int    `json:"orden"`
}

// ImageImportResult summarizes a Drive image import run
type ImageImportResult struct {
	Total     int      `json:"total"`
	Attached  int      `json:"attached"`
	Skipped   int      `json:"skipped"`
	Unmatched []string `json:"unmatched"`
}
