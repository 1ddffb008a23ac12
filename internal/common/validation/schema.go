package validation

import (
	"encoding/json"
	"fmt"
	"math"
	"net/mail"
	"sort"
	"strconv"
	"strings"
	"time"

	apperrors "staffing-api/internal/common/errors"

	"github.com/mitchellh/mapstructure"
	"github.com/xeipuuv/gojsonschema"
)

// Kind is the value type a property accepts after normalization.
type Kind string

const (
	String  Kind = "string"
	Number  Kind = "number"
	Integer Kind = "integer"
	Array   Kind = "array"
	Date    Kind = "date"
)

const isoDateFormat = "iso-date"

// Property describes one accepted input field.
type Property struct {
	Name       string
	Kind       Kind
	Required   bool
	Trim       bool
	AllowEmpty bool // "" and null are accepted and normalized to nil
	MinLength  int
	MaxLength  int
	Min        *float64
	Max        *float64
	Precision  int // decimal places kept for numbers, 0 leaves the value untouched
	Enum       []string
	Pattern    string
	Format     string // "email" or "uri"
	Default    interface{}
	Items      *Property
	MinItems   int
	NotFuture  bool
	NotBefore  string // name of a sibling Date property
}

// Schema is a named, ordered set of properties. Unknown input keys are dropped.
type Schema struct {
	Name          string
	Properties    []Property
	MinProperties int

	index    map[string]int
	compiled *gojsonschema.Schema
}

// Result is the outcome of Validate. Value holds the normalized input and Keys the
// properties present in it, in declaration order.
type Result struct {
	Valid  bool
	Value  map[string]interface{}
	Keys   []string
	Errors []apperrors.FieldViolation
}

func init() {
	gojsonschema.FormatCheckers.Add(isoDateFormat, isoDateChecker{})
	gojsonschema.FormatCheckers.Add("email", emailChecker{})
}

// emailChecker accepts a bare addr-spec whose domain has at least two labels.
// Display names ("Bob <bob@x.com>") and single-label hosts are rejected.
type emailChecker struct{}

func (emailChecker) IsFormat(input interface{}) bool {
	s, ok := input.(string)
	if !ok {
		return true
	}
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return false
	}
	at := strings.LastIndexByte(s, '@')
	if at <= 0 {
		return false
	}
	domain := s[at+1:]
	return strings.Contains(domain, ".") &&
		!strings.HasPrefix(domain, ".") &&
		!strings.HasSuffix(domain, ".") &&
		!strings.Contains(domain, "..")
}

type isoDateChecker struct{}

func (isoDateChecker) IsFormat(input interface{}) bool {
	s, ok := input.(string)
	if !ok {
		return true
	}
	_, err := parseDate(s)
	return err == nil
}

var dateLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

// NewSchema compiles a schema. It panics when the generated JSON schema is
// rejected, which only happens for programming errors in the declarations.
func NewSchema(name string, minProperties int, props ...Property) *Schema {
	s := &Schema{
		Name:          name,
		Properties:    props,
		MinProperties: minProperties,
		index:         make(map[string]int, len(props)),
	}
	for i, p := range props {
		s.index[p.Name] = i
	}

	compiled, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(s.jsonSchema()))
	if err != nil {
		panic(fmt.Sprintf("validation: schema %s: %v", name, err))
	}
	s.compiled = compiled
	return s
}

func (s *Schema) jsonSchema() map[string]interface{} {
	properties := make(map[string]interface{}, len(s.Properties))
	required := []string{}
	for _, p := range s.Properties {
		properties[p.Name] = p.jsonSchema()
		if p.Required {
			required = append(required, p.Name)
		}
	}

	doc := map[string]interface{}{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		doc["required"] = required
	}
	if s.MinProperties > 0 {
		doc["minProperties"] = s.MinProperties
	}
	return doc
}

func (p Property) jsonSchema() map[string]interface{} {
	out := map[string]interface{}{}

	baseType := string(p.Kind)
	if p.Kind == Date {
		baseType = "string"
		out["format"] = isoDateFormat
	}
	if p.AllowEmpty {
		out["type"] = []string{baseType, "null"}
	} else {
		out["type"] = baseType
	}

	if p.MinLength > 0 {
		out["minLength"] = p.MinLength
	}
	if p.MaxLength > 0 {
		out["maxLength"] = p.MaxLength
	}
	if p.Min != nil {
		out["minimum"] = *p.Min
	}
	if p.Max != nil {
		out["maximum"] = *p.Max
	}
	if len(p.Enum) > 0 {
		out["enum"] = p.Enum
	}
	if p.Pattern != "" {
		out["pattern"] = p.Pattern
	}
	if p.Format != "" {
		out["format"] = p.Format
	}
	if p.Items != nil {
		out["items"] = p.Items.jsonSchema()
	}
	if p.MinItems > 0 {
		out["minItems"] = p.MinItems
	}
	return out
}

// Validate normalizes input against schema and reports every violated rule.
func Validate(input map[string]interface{}, schema *Schema) *Result {
	return schema.Validate(input)
}

func (s *Schema) Validate(input map[string]interface{}) *Result {
	value, keys, emptied := s.normalize(input)

	violations := make([]apperrors.FieldViolation, 0)
	for _, name := range emptied {
		violations = append(violations, violation(name, "string.empty", s.lookup(name)))
	}

	res, err := s.compiled.Validate(gojsonschema.NewGoLoader(value))
	if err != nil {
		violations = append(violations, apperrors.FieldViolation{
			Field:   "",
			Message: fmt.Sprintf("%q could not be validated: %v", "value", err),
			Type:    "any.invalid",
		})
	} else {
		for _, re := range res.Errors() {
			field := fieldPath(re)
			if contains(emptied, field) {
				continue
			}
			violations = append(violations, s.translate(re, field))
		}
	}

	failed := make(map[string]bool, len(violations))
	for _, v := range violations {
		failed[rootName(v.Field)] = true
	}
	violations = append(violations, s.checkDates(value, failed)...)

	s.sortViolations(violations)

	return &Result{
		Valid:  len(violations) == 0,
		Value:  value,
		Keys:   keys,
		Errors: violations,
	}
}

// normalize trims, coerces and defaults the input. It returns the normalized map,
// the present keys in declaration order and the names of required-non-empty string
// fields that were sent as "".
func (s *Schema) normalize(input map[string]interface{}) (map[string]interface{}, []string, []string) {
	out := make(map[string]interface{}, len(s.Properties))
	keys := make([]string, 0, len(s.Properties))
	var emptied []string

	for _, p := range s.Properties {
		raw, present := input[p.Name]
		if !present {
			if p.Default != nil {
				out[p.Name] = p.Default
				keys = append(keys, p.Name)
			}
			continue
		}

		v := p.normalize(raw)
		if str, ok := v.(string); ok && str == "" && (p.Kind == String || p.Kind == Date) {
			emptied = append(emptied, p.Name)
		}
		out[p.Name] = v
		keys = append(keys, p.Name)
	}
	return out, keys, emptied
}

func (p Property) normalize(raw interface{}) interface{} {
	if str, ok := raw.(string); ok && (p.Trim || p.Kind == Number || p.Kind == Integer) {
		raw = strings.TrimSpace(str)
	}
	if p.AllowEmpty && (raw == nil || raw == "") {
		return nil
	}

	switch p.Kind {
	case Number, Integer:
		f, ok := toFloat(raw)
		if !ok {
			return raw
		}
		if p.Precision > 0 {
			scale := math.Pow(10, float64(p.Precision))
			f = math.Round(f*scale) / scale
		}
		if p.Kind == Integer && f == math.Trunc(f) && math.Abs(f) < 1<<53 {
			return int64(f)
		}
		return f
	case Array:
		var items []interface{}
		switch vs := raw.(type) {
		case []interface{}:
			items = vs
		case []string:
			items = make([]interface{}, len(vs))
			for i, v := range vs {
				items[i] = v
			}
		default:
			return raw
		}
		if p.Items == nil {
			return items
		}
		out := make([]interface{}, len(items))
		for i, item := range items {
			out[i] = p.Items.normalize(item)
		}
		return out
	default:
		return raw
	}
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		if n == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(n, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// checkDates applies the date rules JSON schema has no keyword for and rewrites
// valid dates to RFC 3339.
func (s *Schema) checkDates(value map[string]interface{}, failed map[string]bool) []apperrors.FieldViolation {
	var out []apperrors.FieldViolation
	now := time.Now()

	for _, p := range s.Properties {
		if p.Kind != Date || failed[p.Name] {
			continue
		}
		str, ok := value[p.Name].(string)
		if !ok {
			continue
		}
		t, err := parseDate(str)
		if err != nil {
			continue
		}

		if p.NotFuture && t.After(now) {
			out = append(out, violation(p.Name, "date.max", &p))
			continue
		}
		if p.NotBefore != "" {
			if other, ok := value[p.NotBefore].(string); ok {
				if ref, err := parseDate(other); err == nil && t.Before(ref) {
					out = append(out, violation(p.Name, "date.min", &p))
					continue
				}
			}
		}
		value[p.Name] = t.UTC().Format(time.RFC3339)
	}
	return out
}

func (s *Schema) lookup(field string) *Property {
	name := rootName(field)
	i, ok := s.index[name]
	if !ok {
		return nil
	}
	p := s.Properties[i]
	if name != field && p.Items != nil {
		item := *p.Items
		return &item
	}
	return &p
}

func fieldPath(re gojsonschema.ResultError) string {
	if re.Type() == "required" {
		if prop, ok := re.Details()["property"].(string); ok {
			return prop
		}
	}
	field := re.Field()
	if field == "(root)" {
		return ""
	}
	return field
}

func rootName(field string) string {
	if i := strings.IndexByte(field, '.'); i >= 0 {
		return field[:i]
	}
	return field
}

func (s *Schema) translate(re gojsonschema.ResultError, field string) apperrors.FieldViolation {
	p := s.lookup(field)

	switch re.Type() {
	case "required":
		return violation(field, "any.required", p)
	case "array_min_properties", "min_properties":
		return apperrors.FieldViolation{
			Field:   field,
			Message: fmt.Sprintf(`"value" must have at least %d key`, s.MinProperties),
			Type:    "object.min",
		}
	case "invalid_type":
		return violation(field, baseType(p, re.Value()), p)
	case "string_gte":
		return violation(field, "string.min", p)
	case "string_lte":
		return violation(field, "string.max", p)
	case "number_gte":
		return violation(field, "number.min", p)
	case "number_lte":
		return violation(field, "number.max", p)
	case "enum":
		return violation(field, "any.only", p)
	case "pattern":
		return violationWithValue(field, "string.pattern.base", p, re.Value())
	case "array_min_items":
		return violation(field, "array.min", p)
	case "format":
		if p != nil && p.Kind == Date {
			return violation(field, "date.format", p)
		}
		if p != nil && p.Format == "uri" {
			return violation(field, "string.uri", p)
		}
		return violation(field, "string.email", p)
	default:
		return apperrors.FieldViolation{Field: field, Message: re.Description(), Type: "any.invalid"}
	}
}

func baseType(p *Property, given interface{}) string {
	if p == nil {
		return "any.invalid"
	}
	switch p.Kind {
	case Integer:
		if _, ok := toFloat(given); ok {
			if _, isString := given.(string); !isString {
				return "number.integer"
			}
		}
		return "number.base"
	case Number:
		return "number.base"
	case Array:
		return "array.base"
	case Date:
		return "date.base"
	default:
		return "string.base"
	}
}

func violation(field, typ string, p *Property) apperrors.FieldViolation {
	return violationWithValue(field, typ, p, nil)
}

func violationWithValue(field, typ string, p *Property, value interface{}) apperrors.FieldViolation {
	label := fmt.Sprintf("%q", field)
	var msg string

	switch typ {
	case "any.required":
		msg = label + " is required"
	case "string.empty":
		msg = label + " is not allowed to be empty"
	case "string.min":
		msg = fmt.Sprintf("%s length must be at least %d characters long", label, p.MinLength)
	case "string.max":
		msg = fmt.Sprintf("%s length must be less than or equal to %d characters long", label, p.MaxLength)
	case "string.email":
		msg = label + " must be a valid email"
	case "string.uri":
		msg = label + " must be a valid uri"
	case "string.pattern.base":
		msg = fmt.Sprintf("%s with value %q fails to match the required pattern: /%s/", label, fmt.Sprint(value), p.Pattern)
	case "string.base":
		msg = label + " must be a string"
	case "number.base":
		msg = label + " must be a number"
	case "number.integer":
		msg = label + " must be an integer"
	case "number.min":
		msg = fmt.Sprintf("%s must be greater than or equal to %s", label, formatNumber(p.Min))
	case "number.max":
		msg = fmt.Sprintf("%s must be less than or equal to %s", label, formatNumber(p.Max))
	case "any.only":
		msg = fmt.Sprintf("%s must be one of [%s]", label, strings.Join(p.Enum, ", "))
	case "array.base":
		msg = label + " must be an array"
	case "array.min":
		msg = fmt.Sprintf("%s must contain at least %d items", label, p.MinItems)
	case "date.base", "date.format":
		msg = label + " must be in ISO 8601 date format"
	case "date.max":
		msg = label + ` must be less than or equal to "now"`
	case "date.min":
		msg = fmt.Sprintf(`%s must be greater than or equal to "ref:%s"`, label, p.NotBefore)
	default:
		msg = label + " is invalid"
	}

	return apperrors.FieldViolation{Field: field, Message: msg, Type: typ}
}

func formatNumber(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}

var ruleRank = map[string]int{
	"any.required":        0,
	"string.empty":        1,
	"string.base":         1,
	"number.base":         1,
	"array.base":          1,
	"date.base":           1,
	"number.integer":      2,
	"any.only":            3,
	"string.min":          4,
	"number.min":          4,
	"array.min":           4,
	"string.max":          5,
	"number.max":          5,
	"string.email":        6,
	"string.uri":          6,
	"string.pattern.base": 6,
	"date.format":         6,
	"date.max":            7,
	"date.min":            7,
}

func (s *Schema) sortViolations(vs []apperrors.FieldViolation) {
	pos := func(field string) int {
		if i, ok := s.index[rootName(field)]; ok {
			return i
		}
		return -1
	}
	sort.SliceStable(vs, func(i, j int) bool {
		pi, pj := pos(vs[i].Field), pos(vs[j].Field)
		if pi != pj {
			return pi < pj
		}
		if vs[i].Field != vs[j].Field {
			return vs[i].Field < vs[j].Field
		}
		return ruleRank[vs[i].Type] < ruleRank[vs[j].Type]
	})
}

// Decode copies a validated value into a tagged struct.
func Decode(value map[string]interface{}, out interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.StringToTimeHookFunc(time.RFC3339),
		Result:     out,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(value)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
