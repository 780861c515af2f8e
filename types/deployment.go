package types

import "time"

type Deployment struct {
	Name       string                       `json:"name"`
	Valid      bool                         `json:"valid"`
	Message    string                       `json:"message,omitempty"`
	Files      map[string][]*DeploymentFile `json:"files,omitempty"`
	Url        string                       `json:"url,omitempty"`
	ListingUrl string                       `json:"listingUrl,omitempty"`
}

type DeploymentFile struct {
	Name         string    `json:"name"`
	DownloadUrl  string    `json:"downloadUrl"`
	SizeBytes    int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
}
