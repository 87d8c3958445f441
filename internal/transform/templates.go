package transform

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/networth/internal/calculation"
	"github.com/rgehrsitz/networth/internal/domain"
	"github.com/shopspring/decimal"
)

// Fixed assumptions of the built-in scenarios
var (
	AggressiveMinReturnRate   = decimal.NewFromFloat(0.09)
	AggressiveMinWorkIncome   = decimal.NewFromInt(15000)
	ConservativeMaxReturnRate = decimal.NewFromFloat(0.05)
	ConservativeMinWorkIncome = decimal.NewFromInt(10000)
)

// TemplateRegistry manages named scenario templates. Registration order is
// preserved so runs and reports are deterministic.
type TemplateRegistry struct {
	templates map[string]Template
	order     []string
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Description string
	Transforms  []ScenarioTransform
}

// NewTemplateRegistry creates an empty template registry
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry, replacing any template with the same name
func (tr *TemplateRegistry) Register(t Template) {
	key := strings.ToLower(t.Name)
	if _, exists := tr.templates[key]; !exists {
		tr.order = append(tr.order, key)
	}
	tr.templates[key] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(strings.TrimSpace(name))]
	return t, ok
}

// List returns all registered template names in registration order
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.order))
	for _, key := range tr.order {
		names = append(names, tr.templates[key].Name)
	}
	return names
}

// Templates returns all registered templates in registration order
func (tr *TemplateRegistry) Templates() []Template {
	templates := make([]Template, 0, len(tr.order))
	for _, key := range tr.order {
		templates = append(templates, tr.templates[key])
	}
	return templates
}

// AggressiveTemplate assumes a higher return and full-time work from the first month
func AggressiveTemplate() Template {
	return Template{
		Name:        domain.ScenarioAggressive,
		Description: "At least 9% return, work from month 0 at no less than $15,000/month",
		Transforms: []ScenarioTransform{
			&FloorReturnRate{Min: AggressiveMinReturnRate},
			&FloorWorkIncome{Min: AggressiveMinWorkIncome},
			&SetWorkStart{Month: 0},
		},
	}
}

// BaseTemplate uses the configured assumptions unchanged
func BaseTemplate() Template {
	return Template{
		Name:        domain.ScenarioBase,
		Description: "Configured return rate and income schedule",
	}
}

// ConservativeTemplate assumes a lower return and work only once the grant runs out
func ConservativeTemplate() Template {
	return Template{
		Name:        domain.ScenarioConservative,
		Description: "At most 5% return, work at no less than $10,000/month once the grant ends",
		Transforms: []ScenarioTransform{
			&CapReturnRate{Max: ConservativeMaxReturnRate},
			&FloorWorkIncome{Min: ConservativeMinWorkIncome},
			&StartWorkAfterGrant{},
		},
	}
}

// CreateBuiltInTemplates creates a registry holding the three standard
// scenarios in run order: Aggressive, Base, Conservative
func CreateBuiltInTemplates() *TemplateRegistry {
	registry := NewTemplateRegistry()
	registry.Register(AggressiveTemplate())
	registry.Register(BaseTemplate())
	registry.Register(ConservativeTemplate())
	return registry
}

// ApplyTemplate applies a template to a base configuration and labels the result
func ApplyTemplate(base *domain.ScenarioConfig, template Template) (*domain.ScenarioConfig, error) {
	modified, err := ApplyTransforms(base, template.Transforms)
	if err != nil {
		return nil, err
	}
	modified.Label = template.Name
	modified.Description = template.Description
	return modified, nil
}

// BuildScenario turns a configuration into an engine-ready scenario whose
// income is the grant plus work income
func BuildScenario(cfg *domain.ScenarioConfig) domain.Scenario {
	return domain.Scenario{
		Label:            cfg.Label,
		Description:      cfg.Description,
		AnnualReturnRate: cfg.AnnualReturnRate,
		Income:           calculation.PlanIncome(cfg.Income),
	}
}

// AggressiveScenario builds the aggressive scenario from the base assumptions
func AggressiveScenario(baseRate decimal.Decimal, income domain.IncomeParams) domain.Scenario {
	return mustBuild(baseRate, income, AggressiveTemplate())
}

// BaseScenario builds the base scenario from the base assumptions
func BaseScenario(baseRate decimal.Decimal, income domain.IncomeParams) domain.Scenario {
	return mustBuild(baseRate, income, BaseTemplate())
}

// ConservativeScenario builds the conservative scenario from the base assumptions
func ConservativeScenario(baseRate decimal.Decimal, income domain.IncomeParams) domain.Scenario {
	return mustBuild(baseRate, income, ConservativeTemplate())
}

func mustBuild(baseRate decimal.Decimal, income domain.IncomeParams, template Template) domain.Scenario {
	base := &domain.ScenarioConfig{AnnualReturnRate: baseRate, Income: income}
	cfg, err := ApplyTemplate(base, template)
	if err != nil {
		// Built-in transforms only fail on out-of-range constants
		panic(fmt.Sprintf("built-in scenario %s: %v", template.Name, err))
	}
	return BuildScenario(cfg)
}

// ParseTemplateList parses a comma-separated list of template names
func ParseTemplateList(templateList string) []string {
	if templateList == "" {
		return nil
	}

	parts := strings.Split(templateList, ",")
	templates := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			templates = append(templates, trimmed)
		}
	}
	return templates
}

// GetTemplateHelp returns formatted help text for all templates
func GetTemplateHelp(registry *TemplateRegistry) string {
	if len(registry.templates) == 0 {
		return "No templates registered"
	}

	var sb strings.Builder
	sb.WriteString("Available Scenarios:\n\n")

	for _, t := range registry.Templates() {
		sb.WriteString(fmt.Sprintf("  %-15s %s\n", t.Name, t.Description))
		for _, tr := range t.Transforms {
			sb.WriteString(fmt.Sprintf("  %-15s   - %s\n", "", tr.Description()))
		}
	}
	sb.WriteString("\n")

	sb.WriteString("Usage:\n")
	sb.WriteString("  networth project plan.yaml --scenarios aggressive,base\n")
	sb.WriteString("  networth project plan.yaml --with \"set_return_rate:rate=0.06;set_work_income:amount=12000\"\n")

	return sb.String()
}
