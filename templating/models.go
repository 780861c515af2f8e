package templating

type ViewListingEntryModel struct {
	Name            string
	Url             string
	IsDir           bool
	SizeBytes       int64
	SizeBytesHuman  string
	ModifiedTs      int64
	ModifiedHuman   string
	ModifiedRfc3339 string
}

type ViewListingModel struct {
	Path      string
	ParentUrl string
	Entries   []*ViewListingEntryModel
}
