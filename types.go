package roofserve

import "time"

// CompaniesDocument is the default file name of the aggregated companies document.
const CompaniesDocument = "all-companies.json"

// Asset describes a file opened for reading.
type Asset struct {
	Path        string
	ContentType string
	Size        int64
	ModTime     time.Time
}

type ImageEntry struct {
	Path        string `json:"path"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type"`
}
