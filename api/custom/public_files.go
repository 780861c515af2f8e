package custom

import (
	"bytes"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gorilla/mux"
	"github.com/openmapkit/deployment-repo/api"
	"github.com/openmapkit/deployment-repo/common"
	"github.com/openmapkit/deployment-repo/common/rcontext"
	"github.com/openmapkit/deployment-repo/templating"
	"github.com/openmapkit/deployment-repo/util"
	"github.com/sirupsen/logrus"
)

// resolvePublicPath maps a slash separated request path onto the public
// directory. The result never leaves publicDir.
func resolvePublicPath(publicDir string, requested string) (string, string, error) {
	clean := path.Clean("/" + requested)
	full := filepath.Join(publicDir, filepath.FromSlash(clean))

	rel, err := filepath.Rel(publicDir, full)
	if err != nil {
		return "", "", err
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", "", common.ErrPathOutsideRoot
	}
	return full, clean, nil
}

func GetPublicFile(r *http.Request, rctx rcontext.RequestContext) interface{} {
	params := mux.Vars(r)
	requested := params["path"]

	fullPath, cleanPath, err := resolvePublicPath(rctx.Config.Deployments.PublicDir, requested)
	if err != nil {
		return api.ErrorFor(rctx, err)
	}

	rctx = rctx.LogWithFields(logrus.Fields{
		"publicPath": cleanPath,
	})

	info, err := os.Stat(fullPath)
	if err != nil {
		return api.ErrorFor(rctx, err)
	}

	if info.IsDir() {
		return listDirectory(rctx, fullPath, cleanPath)
	}

	f, err := os.Open(fullPath)
	if err != nil {
		return api.ErrorFor(rctx, err)
	}

	contentType, err := util.DetectMimeType(f, strings.TrimPrefix(filepath.Ext(info.Name()), "."))
	if err != nil {
		f.Close()
		return api.ErrorFor(rctx, err)
	}

	return &api.DownloadResponse{
		ContentType:       contentType,
		Filename:          info.Name(),
		SizeBytes:         info.Size(),
		Data:              f,
		TargetDisposition: "infer",
	}
}

func listDirectory(rctx rcontext.RequestContext, fullPath string, cleanPath string) interface{} {
	entries, err := os.ReadDir(fullPath)
	if err != nil {
		return api.ErrorFor(rctx, err)
	}

	prefix := rctx.Config.Urls.PublicPrefix
	model := &templating.ViewListingModel{
		Path:    cleanPath,
		Entries: make([]*templating.ViewListingEntryModel, 0, len(entries)),
	}
	if cleanPath != "/" {
		model.ParentUrl = "/" + util.MakeUrl(prefix, util.EscapePath(path.Dir(cleanPath))) + "/"
	}

	for _, entry := range entries {
		info, err := entry.Info()
		if err != nil {
			// Removed between listing and stat
			if os.IsNotExist(err) {
				continue
			}
			return api.ErrorFor(rctx, err)
		}

		model.Entries = append(model.Entries, &templating.ViewListingEntryModel{
			Name:            entry.Name(),
			Url:             "/" + util.MakeUrl(prefix, util.EscapePath(cleanPath), util.EscapePath(entry.Name())),
			IsDir:           entry.IsDir(),
			SizeBytes:       info.Size(),
			SizeBytesHuman:  humanize.Bytes(uint64(info.Size())),
			ModifiedTs:      info.ModTime().UnixMilli(),
			ModifiedHuman:   humanize.Time(info.ModTime()),
			ModifiedRfc3339: info.ModTime().UTC().Format(time.RFC3339),
		})
	}

	// Directories first, then by name
	sort.SliceStable(model.Entries, func(i, j int) bool {
		if model.Entries[i].IsDir != model.Entries[j].IsDir {
			return model.Entries[i].IsDir
		}
		return model.Entries[i].Name < model.Entries[j].Name
	})

	t, err := templating.GetTemplate("directory_listing")
	if err != nil {
		return api.ErrorFor(rctx, err)
	}
	html := bytes.Buffer{}
	if err = t.Execute(&html, model); err != nil {
		return api.ErrorFor(rctx, err)
	}

	return &api.HtmlResponse{HTML: html.String()}
}
