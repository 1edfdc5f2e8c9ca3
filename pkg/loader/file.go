package loader

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"policyver-hq/nomos/pkg/logic"
	"policyver-hq/nomos/pkg/model"
)

// yamlUnit is the intermediate structure for one rule-base file: a record
// containing a documents array and a clauses array.
type yamlUnit struct {
	Documents []yamlDocument `yaml:"documents"`
	Clauses   []yamlClause   `yaml:"clauses"`
}

// yamlDocument is the intermediate document record.
type yamlDocument struct {
	ID         string   `yaml:"id"`
	Title      string   `yaml:"title"`
	PolicyID   string   `yaml:"policy_id"`
	DocType    string   `yaml:"doc_type"`
	DateIssued string   `yaml:"date_issued"`
	URL        string   `yaml:"url"`
	Clauses    []string `yaml:"clauses"`
}

// yamlClause is the intermediate clause record.
type yamlClause struct {
	ID             string      `yaml:"id"`
	PolicyID       string      `yaml:"policy_id"`
	ParentDocID    string      `yaml:"parent_doc_id"`
	AuthorityLevel string      `yaml:"authority_level"`
	Signatory      string      `yaml:"signatory"`
	EffectiveFrom  string      `yaml:"effective_from"`
	EffectiveTo    string      `yaml:"effective_to"`
	Status         string      `yaml:"status"`
	SupersededBy   string      `yaml:"superseded_by"`
	AmendedBy      []string    `yaml:"amended_by"`
	Text           string      `yaml:"text"`
	Logic          interface{} `yaml:"logic"`
	DependsOn      []string    `yaml:"depends_on"`
	Excludes       []string    `yaml:"excludes"`
	Tags           []string    `yaml:"tags"`
}

// dateFormats are the accepted textual date forms, tried in order.
var dateFormats = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// parseDate parses a fixed-format date or datetime string.
func parseDate(s string) (time.Time, error) {
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// decodeUnit parses one rule-base file's bytes into model records. Any record
// error fails the whole unit so that no partial state from a bad file ever
// reaches the graph.
func decodeUnit(data []byte) ([]*model.Document, []*model.Clause, error) {
	var unit yamlUnit
	if err := yaml.Unmarshal(data, &unit); err != nil {
		return nil, nil, err
	}

	var errs ErrorList

	docs := make([]*model.Document, 0, len(unit.Documents))
	for i, yd := range unit.Documents {
		doc, err := buildDocument(&yd)
		if err != nil {
			errs.Add(fmt.Errorf("document %d: %w", i, err))
			continue
		}
		docs = append(docs, doc)
	}

	clauses := make([]*model.Clause, 0, len(unit.Clauses))
	for i, yc := range unit.Clauses {
		clause, err := buildClause(&yc)
		if err != nil {
			errs.Add(fmt.Errorf("clause %d: %w", i, err))
			continue
		}
		clauses = append(clauses, clause)
	}

	if err := errs.ToError(); err != nil {
		return nil, nil, err
	}
	return docs, clauses, nil
}

// buildDocument transforms a yamlDocument into a model.Document.
func buildDocument(yd *yamlDocument) (*model.Document, error) {
	doc := &model.Document{
		ID:        yd.ID,
		Title:     yd.Title,
		PolicyID:  yd.PolicyID,
		DocType:   model.AuthorityLevel(yd.DocType),
		URL:       yd.URL,
		ClauseIDs: yd.Clauses,
	}

	if yd.DateIssued != "" {
		issued, err := parseDate(yd.DateIssued)
		if err != nil {
			return nil, fmt.Errorf("date_issued: %w", err)
		}
		doc.DateIssued = issued
	}

	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return doc, nil
}

// buildClause transforms a yamlClause into a model.Clause, parsing dates and
// the optional logic expression.
func buildClause(yc *yamlClause) (*model.Clause, error) {
	clause := &model.Clause{
		ID:             yc.ID,
		PolicyID:       yc.PolicyID,
		ParentDocID:    yc.ParentDocID,
		AuthorityLevel: model.AuthorityLevel(yc.AuthorityLevel),
		Signatory:      yc.Signatory,
		Status:         model.Status(yc.Status),
		SupersededBy:   yc.SupersededBy,
		AmendedBy:      yc.AmendedBy,
		Text:           yc.Text,
		DependsOn:      yc.DependsOn,
		Excludes:       yc.Excludes,
		Tags:           yc.Tags,
	}

	if yc.EffectiveFrom == "" {
		return nil, fmt.Errorf("clause %q: effective_from is required", yc.ID)
	}
	from, err := parseDate(yc.EffectiveFrom)
	if err != nil {
		return nil, fmt.Errorf("clause %q: effective_from: %w", yc.ID, err)
	}
	clause.EffectiveFrom = from

	if yc.EffectiveTo != "" {
		to, err := parseDate(yc.EffectiveTo)
		if err != nil {
			return nil, fmt.Errorf("clause %q: effective_to: %w", yc.ID, err)
		}
		clause.EffectiveTo = &to
	}

	if yc.Logic != nil {
		expr, err := logic.Parse(yc.Logic)
		if err != nil {
			return nil, fmt.Errorf("clause %q: logic: %w", yc.ID, err)
		}
		clause.Logic = expr
	}

	if err := clause.Validate(); err != nil {
		return nil, err
	}
	return clause, nil
}
