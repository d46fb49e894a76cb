// Package sitemap rewrites third-party sitemap XML so upstream URLs appear
// under our own host. It handles both <urlset> and <sitemapindex> documents
// and preserves the per-entry fields it does not touch.
package sitemap

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
)

// Entry is one <url> or <sitemap> element. Fields other than Loc pass
// through untouched.
type Entry struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

type urlSet struct {
	XMLName xml.Name `xml:"urlset"`
	Xmlns   string   `xml:"xmlns,attr"`
	URLs    []Entry  `xml:"url"`
}

type sitemapIndex struct {
	XMLName  xml.Name `xml:"sitemapindex"`
	Xmlns    string   `xml:"xmlns,attr"`
	Sitemaps []Entry  `xml:"sitemap"`
}

// rootName returns the local name of the document's root element.
func rootName(b []byte) (string, error) {
	dec := xml.NewDecoder(bytes.NewReader(b))
	for {
		tok, err := dec.Token()
		if err != nil {
			return "", fmt.Errorf("parse sitemap: %w", err)
		}
		if se, ok := tok.(xml.StartElement); ok {
			return se.Name.Local, nil
		}
	}
}

// Rewrite maps every <loc> through mapLoc and re-serializes the document.
// The root element kind is preserved, as are lastmod/changefreq/priority.
func Rewrite(b []byte, mapLoc func(string) string) ([]byte, error) {
	root, err := rootName(b)
	if err != nil {
		return nil, err
	}
	switch root {
	case "urlset":
		var doc urlSet
		if err := xml.Unmarshal(b, &doc); err != nil {
			return nil, fmt.Errorf("parse urlset: %w", err)
		}
		for i := range doc.URLs {
			doc.URLs[i].Loc = mapLoc(doc.URLs[i].Loc)
		}
		return marshal(doc)
	case "sitemapindex":
		var doc sitemapIndex
		if err := xml.Unmarshal(b, &doc); err != nil {
			return nil, fmt.Errorf("parse sitemapindex: %w", err)
		}
		for i := range doc.Sitemaps {
			doc.Sitemaps[i].Loc = mapLoc(doc.Sitemaps[i].Loc)
		}
		return marshal(doc)
	}
	return nil, fmt.Errorf("parse sitemap: unexpected root element %q", root)
}

// RewriteHost rewrites locs that start with fromBase to start with toBase;
// other locs pass through unchanged.
func RewriteHost(b []byte, fromBase, toBase string) ([]byte, error) {
	return Rewrite(b, func(loc string) string {
		if strings.HasPrefix(loc, fromBase) {
			return toBase + strings.TrimPrefix(loc, fromBase)
		}
		return loc
	})
}

func marshal(doc any) ([]byte, error) {
	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serialize sitemap: %w", err)
	}
	return append([]byte(xml.Header), append(out, '\n')...), nil
}
