package rendering

import (
	"bytes"
	"fmt"
)

// Object types the built-in renderers understand.
const (
	TypeURLVisit = "url_visit"
	TypePrefetch = "prefetch"
)

func init() {
	registerRenderer(urlHistoryRenderer{})
	registerRenderer(prefetchRenderer{})
}

// urlHistoryRenderer tabulates browser URL visits.
type urlHistoryRenderer struct{}

func (urlHistoryRenderer) Name() string { return "urlhistory" }

func (urlHistoryRenderer) Render(b *Bundle) ([]byte, bool, error) {
	visits := b.ObjectsOfType(TypeURLVisit)
	if len(visits) == 0 {
		return nil, false, nil
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# URL History: %s\n\n", b.Name)
	buf.WriteString("| URL | Title | Browser |\n|---|---|---|\n")
	for _, v := range visits {
		fmt.Fprintf(&buf, "| %v | %v | %v |\n",
			v.Properties["url"], v.Properties["title"], v.Properties["browser"])
	}
	return buf.Bytes(), true, nil
}

// prefetchRenderer tabulates Windows prefetch entries.
type prefetchRenderer struct{}

func (prefetchRenderer) Name() string { return "prefetch" }

func (prefetchRenderer) Render(b *Bundle) ([]byte, bool, error) {
	entries := b.ObjectsOfType(TypePrefetch)
	if len(entries) == 0 {
		return nil, false, nil
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# Prefetch Entries: %s\n\n", b.Name)
	buf.WriteString("| Executable | Run Count |\n|---|---|\n")
	for _, e := range entries {
		fmt.Fprintf(&buf, "| %v | %v |\n", e.Properties["executable"], e.Properties["run_count"])
	}
	return buf.Bytes(), true, nil
}
