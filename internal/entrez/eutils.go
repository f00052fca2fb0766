package entrez

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Taxon is the subset of a taxonomy record seqfetch needs.
type Taxon struct {
	TaxID          string
	ScientificName string
	Rank           string
}

// SearchResult is the history handle returned by ESearch with usehistory=y.
type SearchResult struct {
	Count    int
	WebEnv   string
	QueryKey string
}

// FetchRequest addresses one page of a stored search.
type FetchRequest struct {
	DB       string
	RetType  string // "gb" | "fasta"
	RetStart int
	RetMax   int
	WebEnv   string
	QueryKey string
}

type taxaSet struct {
	Taxa []struct {
		TaxID          string `xml:"TaxId"`
		ScientificName string `xml:"ScientificName"`
		Rank           string `xml:"Rank"`
	} `xml:"Taxon"`
	Error string `xml:"ERROR"`
}

type esearchResponse struct {
	Error  string `json:"error"`
	Result struct {
		Count    string `json:"count"`
		QueryKey string `json:"querykey"`
		WebEnv   string `json:"webenv"`
		Error    string `json:"ERROR"`
	} `json:"esearchresult"`
}

// LookupTaxon resolves taxID to its scientific name (efetch db=taxonomy).
// An unknown ID returns an error wrapping ErrTaxonNotFound.
func (c *Client) LookupTaxon(ctx context.Context, taxID string) (Taxon, error) {
	body, err := c.get(ctx, "efetch.fcgi", url.Values{
		"db":      {"taxonomy"},
		"id":      {taxID},
		"retmode": {"xml"},
	})
	if err != nil {
		return Taxon{}, err
	}
	var ts taxaSet
	if err := xml.Unmarshal(body, &ts); err != nil {
		return Taxon{}, fmt.Errorf("entrez taxonomy: decode %q: %w", taxID, err)
	}
	if len(ts.Taxa) == 0 || ts.Taxa[0].ScientificName == "" {
		if msg := strings.TrimSpace(ts.Error); msg != "" {
			return Taxon{}, fmt.Errorf("taxid %q: %s: %w", taxID, msg, ErrTaxonNotFound)
		}
		return Taxon{}, fmt.Errorf("taxid %q: %w", taxID, ErrTaxonNotFound)
	}
	t := ts.Taxa[0]
	return Taxon{TaxID: t.TaxID, ScientificName: t.ScientificName, Rank: t.Rank}, nil
}

// Search runs term against db and asks the server to keep the result set
// (usehistory=y). No IDs are transferred (retmax=0).
func (c *Client) Search(ctx context.Context, db, term string) (SearchResult, error) {
	body, err := c.get(ctx, "esearch.fcgi", url.Values{
		"db":         {db},
		"term":       {term},
		"usehistory": {"y"},
		"retmax":     {"0"},
		"retmode":    {"json"},
	})
	if err != nil {
		return SearchResult{}, err
	}
	var resp esearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return SearchResult{}, fmt.Errorf("entrez esearch: decode: %w", err)
	}
	if resp.Error != "" {
		return SearchResult{}, &ServiceError{Op: "esearch", Message: resp.Error}
	}
	if resp.Result.Error != "" {
		return SearchResult{}, &ServiceError{Op: "esearch", Message: resp.Result.Error}
	}
	n, err := strconv.Atoi(resp.Result.Count)
	if err != nil {
		return SearchResult{}, fmt.Errorf("entrez esearch: bad count %q: %w", resp.Result.Count, err)
	}
	if n > 0 && (resp.Result.WebEnv == "" || resp.Result.QueryKey == "") {
		return SearchResult{}, &ServiceError{Op: "esearch", Message: "response has no history handle"}
	}
	return SearchResult{Count: n, WebEnv: resp.Result.WebEnv, QueryKey: resp.Result.QueryKey}, nil
}

// Fetch returns the raw text payload of one page of a stored search.
func (c *Client) Fetch(ctx context.Context, req FetchRequest) ([]byte, error) {
	body, err := c.get(ctx, "efetch.fcgi", url.Values{
		"db":        {req.DB},
		"rettype":   {req.RetType},
		"retmode":   {"text"},
		"retstart":  {strconv.Itoa(req.RetStart)},
		"retmax":    {strconv.Itoa(req.RetMax)},
		"WebEnv":    {req.WebEnv},
		"query_key": {req.QueryKey},
	})
	if err != nil {
		return nil, err
	}
	if msg, ok := embeddedError(body); ok {
		return nil, &ServiceError{Op: "efetch", Message: msg}
	}
	return body, nil
}

// embeddedError recognizes the JSON and XML error documents E-utilities
// sends with status 200 in place of a text payload.
func embeddedError(body []byte) (string, bool) {
	b := bytes.TrimSpace(body)
	switch {
	case bytes.HasPrefix(b, []byte("{")):
		var e struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(b, &e) == nil && e.Error != "" {
			return e.Error, true
		}
	case bytes.HasPrefix(b, []byte("<")):
		var e struct {
			Error string `xml:"ERROR"`
		}
		if xml.Unmarshal(b, &e) == nil && e.Error != "" {
			return strings.TrimSpace(e.Error), true
		}
	}
	return "", false
}

const maxErrorLen = 200

// errorMessage extracts a short message from an error response body.
func errorMessage(body []byte) string {
	if msg, ok := embeddedError(body); ok {
		return msg
	}
	s := strings.TrimSpace(string(body))
	if len(s) <= maxErrorLen {
		return s
	}
	cut := maxErrorLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
