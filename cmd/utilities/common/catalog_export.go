package common

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/openmapkit/deployment-repo/common"
	"github.com/openmapkit/deployment-repo/types"
	"github.com/pkg/errors"
)

// EncodeCatalog renders deployments as "json" or a human readable "table".
func EncodeCatalog(deployments []*types.Deployment, format string, now time.Time) ([]byte, error) {
	switch format {
	case "json":
		return json.MarshalIndent(deployments, "", "  ")
	case "table":
		return encodeTable(deployments, now)
	default:
		return nil, errors.Errorf("unknown output format '%s'", format)
	}
}

func encodeTable(deployments []*types.Deployment, now time.Time) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := tabwriter.NewWriter(buf, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tVALID\tFILES\tSIZE\tLAST MODIFIED\tNOTE")
	for _, d := range deployments {
		if !d.Valid {
			_, _ = fmt.Fprintf(w, "%s\tno\t-\t-\t-\t%s\n", d.Name, d.Message)
			continue
		}

		count := 0
		size := uint64(0)
		var newest time.Time
		for _, kind := range common.AllKinds {
			for _, f := range d.Files[kind] {
				count++
				size += uint64(f.SizeBytes)
				if f.LastModified.After(newest) {
					newest = f.LastModified
				}
			}
		}

		modified := "-"
		if !newest.IsZero() {
			modified = humanize.RelTime(newest, now, "ago", "from now")
		}
		_, _ = fmt.Fprintf(w, "%s\tyes\t%s\t%s\t%s\t\n", d.Name, humanize.Comma(int64(count)), humanize.Bytes(size), modified)
	}
	if err := w.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteOutput writes b to file, or to stdout when file is "-".
func WriteOutput(b []byte, file string) error {
	var out io.Writer = os.Stdout
	if file != "-" {
		f, err := os.Create(file)
		if err != nil {
			return err
		}
		defer func(f *os.File) {
			_ = f.Close()
		}(f)
		out = f
	}

	_, err := out.Write(b)
	return err
}
