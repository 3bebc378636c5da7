package repositories

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// SearchField selects which post column a search matches against
type SearchField string

const (
	SearchFieldAll      SearchField = "all"
	SearchFieldID       SearchField = "id"
	SearchFieldTitle    SearchField = "title"
	SearchFieldTopic    SearchField = "topic"
	SearchFieldSubTopic SearchField = "subTopic"
)

// MaxSearchResults caps every post search
const MaxSearchResults = 100

var ErrInvalidPostID = errors.New("invalid post ID")

// ParseSearchField maps the raw query parameter onto a SearchField.
// Empty and unrecognised values search every text column.
func ParseSearchField(raw string) SearchField {
	switch SearchField(raw) {
	case SearchFieldID, SearchFieldTitle, SearchFieldTopic, SearchFieldSubTopic:
		return SearchField(raw)
	default:
		return SearchFieldAll
	}
}

// searchConditions holds one fixed WHERE template per field; the query text never reaches the SQL string.
var searchConditions = map[SearchField]string{
	SearchFieldID:       "p.id = ?",
	SearchFieldTitle:    "p.title ILIKE ?",
	SearchFieldTopic:    "i.name ILIKE ?",
	SearchFieldSubTopic: "si.name ILIKE ?",
	SearchFieldAll:      "(p.title ILIKE ? OR i.name ILIKE ? OR si.name ILIKE ?)",
}

// PostSearch is a validated search request
type PostSearch struct {
	Field SearchField
	Query string
	id    int64
}

// NewPostSearch validates the query against the field it targets.
func NewPostSearch(field SearchField, query string) (PostSearch, error) {
	search := PostSearch{Field: field, Query: query}
	if field != SearchFieldID {
		return search, nil
	}

	id, err := strconv.ParseInt(strings.TrimSpace(query), 10, 64)
	if err != nil {
		return PostSearch{}, errors.Wrapf(ErrInvalidPostID, "%q", query)
	}
	search.id = id
	return search, nil
}

// ID is the numeric post id of an id search
func (s PostSearch) ID() int64 {
	return s.id
}

// Condition returns the WHERE clause and its arguments.
func (s PostSearch) Condition() (string, []interface{}) {
	cond, ok := searchConditions[s.Field]
	if !ok {
		cond = searchConditions[SearchFieldAll]
	}

	if s.Field == SearchFieldID {
		return cond, []interface{}{s.id}
	}

	pattern := containsPattern(s.Query)
	args := make([]interface{}, strings.Count(cond, "?"))
	for i := range args {
		args[i] = pattern
	}
	return cond, args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE substring pattern with the wildcards in s escaped.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
