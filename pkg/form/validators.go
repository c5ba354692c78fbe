// Package form is the runtime host the feedback engine decides over: a field
// tree with value/touched state, validator execution, an ordered error
// summary with field back-references, and the submit lifecycle helper.
package form

import (
	"fmt"
	"net/mail"
	"regexp"
	"strconv"
	"strings"

	"github.com/goliatone/go-formstate/pkg/model"
)

// Validator pairs a check with the kind of error it produces. The kind is
// carried explicitly so the field can answer questions like "is a required
// rule attached" without running the check.
type Validator struct {
	Kind  string
	Check func(value any) *model.ValidationError
}

// Required fails for nil, empty/whitespace strings, and empty slices or maps.
func Required() Validator {
	return Validator{
		Kind: model.RuleRequired,
		Check: func(value any) *model.ValidationError {
			if isEmptyValue(value) {
				return &model.ValidationError{Kind: model.RuleRequired}
			}
			return nil
		},
	}
}

// Email validates the value parses as an RFC 5322 address. Empty values
// pass; combine with Required for mandatory fields.
func Email() Validator {
	return Validator{
		Kind: model.RuleEmail,
		Check: func(value any) *model.ValidationError {
			str := stringValue(value)
			if str == "" {
				return nil
			}
			if _, err := mail.ParseAddress(str); err != nil {
				return &model.ValidationError{Kind: model.RuleEmail}
			}
			return nil
		},
	}
}

// MinLength enforces a minimum rune count on string values.
func MinLength(min int) Validator {
	return Validator{
		Kind: model.RuleMinLength,
		Check: func(value any) *model.ValidationError {
			str := stringValue(value)
			if str == "" {
				return nil
			}
			if len([]rune(str)) < min {
				return &model.ValidationError{
					Kind:   model.RuleMinLength,
					Params: map[string]string{"minLength": strconv.Itoa(min)},
				}
			}
			return nil
		},
	}
}

// MaxLength enforces a maximum rune count on string values.
func MaxLength(max int) Validator {
	return Validator{
		Kind: model.RuleMaxLength,
		Check: func(value any) *model.ValidationError {
			if len([]rune(stringValue(value))) > max {
				return &model.ValidationError{
					Kind:   model.RuleMaxLength,
					Params: map[string]string{"maxLength": strconv.Itoa(max)},
				}
			}
			return nil
		},
	}
}

// Min enforces a numeric lower bound.
func Min(min float64) Validator {
	return Validator{
		Kind: model.RuleMin,
		Check: func(value any) *model.ValidationError {
			num, ok := floatValue(value)
			if !ok {
				return nil
			}
			if num < min {
				return &model.ValidationError{
					Kind:   model.RuleMin,
					Params: map[string]string{"min": formatFloat(min)},
				}
			}
			return nil
		},
	}
}

// Max enforces a numeric upper bound.
func Max(max float64) Validator {
	return Validator{
		Kind: model.RuleMax,
		Check: func(value any) *model.ValidationError {
			num, ok := floatValue(value)
			if !ok {
				return nil
			}
			if num > max {
				return &model.ValidationError{
					Kind:   model.RuleMax,
					Params: map[string]string{"max": formatFloat(max)},
				}
			}
			return nil
		},
	}
}

// Pattern enforces a regular expression on string values. Empty values pass.
func Pattern(re *regexp.Regexp) Validator {
	return Validator{
		Kind: model.RulePattern,
		Check: func(value any) *model.ValidationError {
			str := stringValue(value)
			if str == "" || re == nil || re.MatchString(str) {
				return nil
			}
			return &model.ValidationError{
				Kind:   model.RulePattern,
				Params: map[string]string{"pattern": re.String()},
			}
		},
	}
}

// Warn downgrades a validator to a non-blocking warning by rewriting the
// kind it carries and the kind of every error it produces.
func Warn(v Validator) Validator {
	inner := v.Check
	return Validator{
		Kind: model.WarnKind(v.Kind),
		Check: func(value any) *model.ValidationError {
			err := inner(value)
			if err == nil {
				return nil
			}
			err.Kind = model.WarnKind(err.Kind)
			return err
		},
	}
}

// WithMessage overrides the message on every error the validator produces,
// making it the validator-supplied message the resolver honours first.
func WithMessage(v Validator, message string) Validator {
	inner := v.Check
	return Validator{
		Kind: v.Kind,
		Check: func(value any) *model.ValidationError {
			err := inner(value)
			if err == nil {
				return nil
			}
			err.Message = message
			return err
		},
	}
}

// FromRules compiles declarative validation rules into runtime validators,
// preserving rule order. Unknown kinds and malformed params are configuration
// errors.
func FromRules(rules []model.ValidationRule) ([]Validator, error) {
	if len(rules) == 0 {
		return nil, nil
	}
	out := make([]Validator, 0, len(rules))
	for _, rule := range rules {
		v, err := compileRule(rule)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func compileRule(rule model.ValidationRule) (Validator, error) {
	kind := rule.Kind
	warn := false
	if strings.HasPrefix(kind, model.WarnPrefix) && len(kind) > len(model.WarnPrefix) {
		warn = true
		kind = kind[len(model.WarnPrefix):]
	}

	var v Validator
	switch kind {
	case model.RuleRequired:
		v = Required()
	case model.RuleEmail:
		v = Email()
	case model.RuleMinLength:
		n, err := ruleInt(rule, "value")
		if err != nil {
			return Validator{}, err
		}
		v = MinLength(n)
	case model.RuleMaxLength:
		n, err := ruleInt(rule, "value")
		if err != nil {
			return Validator{}, err
		}
		v = MaxLength(n)
	case model.RuleMin:
		f, err := ruleFloat(rule, "value")
		if err != nil {
			return Validator{}, err
		}
		v = Min(f)
	case model.RuleMax:
		f, err := ruleFloat(rule, "value")
		if err != nil {
			return Validator{}, err
		}
		v = Max(f)
	case model.RulePattern:
		expr := rule.Params["pattern"]
		if expr == "" {
			return Validator{}, fmt.Errorf("form: pattern rule is missing params[\"pattern\"]")
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			return Validator{}, fmt.Errorf("form: compile pattern rule: %w", err)
		}
		v = Pattern(re)
	default:
		return Validator{}, fmt.Errorf("form: unknown validation kind %q", rule.Kind)
	}

	if warn {
		v = Warn(v)
	}
	if rule.Message != "" {
		v = WithMessage(v, rule.Message)
	}
	return v, nil
}

func ruleInt(rule model.ValidationRule, key string) (int, error) {
	raw := rule.Params[key]
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("form: rule %s needs an integer params[%q], got %q", rule.Kind, key, raw)
	}
	return n, nil
}

func ruleFloat(rule model.ValidationRule, key string) (float64, error) {
	raw := rule.Params[key]
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("form: rule %s needs a numeric params[%q], got %q", rule.Kind, key, raw)
	}
	return f, nil
}

func isEmptyValue(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	case []any:
		return len(v) == 0
	case []string:
		return len(v) == 0
	case map[string]any:
		return len(v) == 0
	default:
		return false
	}
}

func stringValue(value any) string {
	if s, ok := value.(string); ok {
		return s
	}
	return ""
}

func floatValue(value any) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	case string:
		if v == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(v, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
