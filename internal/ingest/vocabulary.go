package ingest

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

type Field string

const (
	FieldWallet      Field = "user_wallet"
	FieldAmount      Field = "loan_amount"
	FieldTerm        Field = "loan_term"
	FieldDueDate     Field = "loan_due_date"
	FieldRepaid      Field = "loan_repaid_amount"
	FieldStarted     Field = "time_loan_started"
	FieldEnded       Field = "time_loan_ended"
	FieldDefaultDate Field = "default_loan_date"
	FieldIsDefaulted Field = "is_defaulted"
	FieldVersion     Field = "version"
)

// RequiredFields lists the columns a usable upload is expected to carry.
var RequiredFields = []Field{FieldWallet, FieldAmount, FieldTerm, FieldDueDate}

var DefaultSynonyms = map[Field][]string{
	FieldWallet:      {"wallet", "address", "wallet_address", "user_address", "wallet_id", "borrower", "borrower_wallet"},
	FieldAmount:      {"amount", "principal", "principal_amount", "value", "loan_value", "loan_size"},
	FieldTerm:        {"term", "duration", "days", "loan_duration", "term_days"},
	FieldDueDate:     {"due_date", "due", "maturity_date", "expiry_date", "expiration_date", "due_at"},
	FieldRepaid:      {"repaid", "repaid_amount", "amount_repaid", "repayment", "repayment_amount"},
	FieldStarted:     {"start_time", "started_at", "loan_start", "start_date", "loan_started"},
	FieldEnded:       {"end_time", "ended_at", "loan_end", "end_date", "loan_ended"},
	FieldDefaultDate: {"default_date", "defaulted_at", "date_defaulted", "loan_default_date"},
	FieldIsDefaulted: {"defaulted", "default", "is_default"},
	FieldVersion:     {"contract_version", "loan_version"},
}

var (
	ErrAmbiguousSynonym       = errors.New("synonym maps to more than one field")
	ErrUnknownField           = errors.New("unknown canonical field")
	ErrRequiredHeadersMissing = errors.New("none of the required columns were found")
)

var (
	separatorRe = regexp.MustCompile(`[\s\-_]+`)
	nonWordRe   = regexp.MustCompile(`[^\w]`)
)

// NormalizeHeader folds a header or synonym spelling into its comparable form.
func NormalizeHeader(s string) string {
	s = strings.TrimSpace(strings.ToLower(s))
	s = separatorRe.ReplaceAllString(s, "_")
	s = nonWordRe.ReplaceAllString(s, "")
	return strings.Trim(s, "_")
}

// Vocabulary resolves header spellings to canonical fields.
type Vocabulary struct {
	index    map[string]Field
	synonyms map[Field][]string
}

func NewVocabulary(table map[Field][]string) (*Vocabulary, error) {
	v := &Vocabulary{
		index:    make(map[string]Field),
		synonyms: make(map[Field][]string),
	}

	fields := make([]Field, 0, len(table))
	for f := range table {
		fields = append(fields, f)
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i] < fields[j] })

	for _, f := range fields {
		if err := v.add(f, string(f)); err != nil {
			return nil, err
		}
		for _, syn := range table[f] {
			if err := v.add(f, syn); err != nil {
				return nil, err
			}
		}
	}
	return v, nil
}

func (v *Vocabulary) add(f Field, spelling string) error {
	key := NormalizeHeader(spelling)
	if key == "" {
		return nil
	}
	if owner, ok := v.index[key]; ok {
		if owner == f {
			return nil
		}
		return fmt.Errorf("%w: %q is claimed by %s and %s", ErrAmbiguousSynonym, spelling, owner, f)
	}
	v.index[key] = f
	v.synonyms[f] = append(v.synonyms[f], key)
	return nil
}

func DefaultVocabulary() *Vocabulary {
	v, err := NewVocabulary(DefaultSynonyms)
	if err != nil {
		panic(err)
	}
	return v
}

// LoadVocabulary extends the default synonyms with a YAML file of the form `field: [spelling, ...]`.
// An empty path yields the default vocabulary.
func LoadVocabulary(path string) (*Vocabulary, error) {
	if path == "" {
		return NewVocabulary(DefaultSynonyms)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("can't read synonyms file: %w", err)
	}
	var extra map[string][]string
	if err := yaml.Unmarshal(raw, &extra); err != nil {
		return nil, fmt.Errorf("can't parse synonyms file: %w", err)
	}

	table := make(map[Field][]string, len(DefaultSynonyms))
	for f, syns := range DefaultSynonyms {
		table[f] = append([]string(nil), syns...)
	}
	for name, syns := range extra {
		f := Field(NormalizeHeader(name))
		if _, ok := table[f]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownField, name)
		}
		table[f] = append(table[f], syns...)
	}
	return NewVocabulary(table)
}

// Lookup returns the canonical field for a raw header.
func (v *Vocabulary) Lookup(header string) (Field, bool) {
	f, ok := v.index[NormalizeHeader(header)]
	return f, ok
}

// Synonyms returns the normalized spellings accepted for f.
func (v *Vocabulary) Synonyms(f Field) []string {
	return append([]string(nil), v.synonyms[f]...)
}

type HeaderMap struct {
	Columns map[int]Field
	Found   []Field
	Missing []Field
}

func (h *HeaderMap) Has(f Field) bool {
	for _, found := range h.Found {
		if found == f {
			return true
		}
	}
	return false
}

// Resolve maps column positions to canonical fields. Unknown columns are ignored and, when several
// columns resolve to the same field, the leftmost one is used.
func (v *Vocabulary) Resolve(header []string) (*HeaderMap, error) {
	hm := &HeaderMap{Columns: make(map[int]Field)}
	seen := make(map[Field]bool)

	for i, h := range header {
		f, ok := v.Lookup(h)
		if !ok || seen[f] {
			continue
		}
		seen[f] = true
		hm.Columns[i] = f
		hm.Found = append(hm.Found, f)
	}

	for _, f := range RequiredFields {
		if !seen[f] {
			hm.Missing = append(hm.Missing, f)
		}
	}

	if len(hm.Missing) == len(RequiredFields) {
		return nil, fmt.Errorf("%w: found [%s], required [%s]",
			ErrRequiredHeadersMissing, joinFields(hm.Found), joinFields(RequiredFields))
	}
	return hm, nil
}

func joinFields(fields []Field) string {
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = string(f)
	}
	return strings.Join(parts, ", ")
}
