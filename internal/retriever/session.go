package retriever

// Session is the immutable result of a successful search: the organism, the
// fixed result count and the server-side history handle (WebEnv, query_key)
// that later fetches page through.
type Session struct {
	taxID    string
	organism string
	count    int
	webEnv   string
	queryKey string
}

// NewSession builds a Session from known values, e.g. to resume paging a
// history handle obtained elsewhere.
func NewSession(taxID, organism string, count int, webEnv, queryKey string) Session {
	return Session{taxID: taxID, organism: organism, count: count, webEnv: webEnv, queryKey: queryKey}
}

func (s Session) TaxID() string        { return s.taxID }
func (s Session) OrganismName() string { return s.organism }
func (s Session) Count() int           { return s.count }
func (s Session) WebEnv() string       { return s.webEnv }
func (s Session) QueryKey() string     { return s.queryKey }

// Valid reports whether the session can be paged.
func (s Session) Valid() bool { return s.count > 0 && s.webEnv != "" && s.queryKey != "" }
