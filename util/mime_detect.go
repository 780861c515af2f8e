package util

import (
	"io"

	"github.com/gabriel-vasile/mimetype"
	"github.com/openmapkit/deployment-repo/common"
)

var kindMimeTypes = map[string]string{
	common.KindOsm:     "application/vnd.openstreetmap.data+xml",
	common.KindMbtiles: "application/vnd.mapbox.mbtiles",
}

// DetectMimeType sniffs the content type of r, leaving the read position where
// it was. Known deployment file kinds are identified by extension instead.
func DetectMimeType(r io.ReadSeeker, ext string) (string, error) {
	if t, ok := kindMimeTypes[ext]; ok {
		return t, nil
	}

	current, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return "", err
	}
	if _, err = r.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	mtype, err := mimetype.DetectReader(r)
	if err != nil {
		return "", err
	}

	if _, err = r.Seek(current, io.SeekStart); err != nil {
		return "", err
	}
	return mtype.String(), nil
}
