package compare

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/rgehrsitz/networth/internal/calculation"
	"github.com/rgehrsitz/networth/internal/domain"
	"github.com/rgehrsitz/networth/internal/transform"
)

// Cache stores serialized comparison sets keyed by input fingerprint
type Cache interface {
	Load(ctx context.Context, key string) ([]byte, bool, error)
	Save(ctx context.Context, key string, data []byte) error
}

// CompareEngine runs every scenario against both targets
type CompareEngine struct {
	CalcEngine        *calculation.CalculationEngine
	MetricsCalculator *MetricsCalculator
	TemplateRegistry  *transform.TemplateRegistry
	Cache             Cache // optional
	Logger            calculation.Logger
}

// NewCompareEngine creates a new comparison engine with the built-in scenarios
func NewCompareEngine(calcEngine *calculation.CalculationEngine) *CompareEngine {
	if calcEngine == nil {
		calcEngine = calculation.NewCalculationEngine()
	}
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
		TemplateRegistry:  transform.CreateBuiltInTemplates(),
		Logger:            calculation.NopLogger{},
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	Scenarios []string // template names to run; empty runs every registered template

	// CustomName and CustomTransforms add one extra scenario built from the base
	// configuration. Ignored when CustomTransforms is empty.
	CustomName       string
	CustomTransforms []transform.ScenarioTransform

	ConfigPath string
}

// Run executes the three standard scenarios against the plan's near and far targets
func (ce *CompareEngine) Run(ctx context.Context, plan *domain.PlanInputs) (*ComparisonSet, error) {
	return ce.Compare(ctx, plan, CompareOptions{})
}

// Compare runs the selected scenarios against both targets. Each engine run is
// independent; cancellation is checked between runs.
func (ce *CompareEngine) Compare(ctx context.Context, plan *domain.PlanInputs, options CompareOptions) (*ComparisonSet, error) {
	if plan == nil {
		return nil, fmt.Errorf("plan inputs cannot be nil")
	}

	templates, err := ce.selectTemplates(options)
	if err != nil {
		return nil, err
	}

	key, err := Fingerprint(plan, templates)
	if err != nil {
		return nil, fmt.Errorf("failed to fingerprint inputs: %w", err)
	}

	if cached, ok := ce.loadCached(ctx, key); ok {
		cached.ConfigPath = options.ConfigPath
		return cached, nil
	}

	base := plan.BaseScenarioConfig()
	results := make([]ComparisonResult, 0, len(templates))

	for _, template := range templates {
		cfg, err := transform.ApplyTemplate(base, template)
		if err != nil {
			return nil, fmt.Errorf("failed to apply template %s: %w", template.Name, err)
		}

		result, err := ce.runScenario(ctx, plan, cfg)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}

	compSet := &ComparisonSet{
		BaseScenarioName: baseName(results),
		StartDate:        plan.StartDate,
		Results:          results,
		ConfigPath:       options.ConfigPath,
		Fingerprint:      key,
	}

	if baseResult := compSet.Base(); baseResult != nil {
		baseCopy := *baseResult
		for i := range compSet.Results {
			compSet.Results[i] = ce.metrics().CalculateComparison(compSet.Results[i], baseCopy)
		}
	}

	compSet.Recommendations = GenerateRecommendations(compSet)

	ce.storeCached(ctx, key, compSet)

	return compSet, nil
}

func (ce *CompareEngine) runScenario(ctx context.Context, plan *domain.PlanInputs, cfg *domain.ScenarioConfig) (ComparisonResult, error) {
	scenario := transform.BuildScenario(cfg)
	result := ComparisonResult{
		ScenarioName:     scenario.Label,
		Description:      scenario.Description,
		Config:           cfg,
		AnnualReturnRate: scenario.AnnualReturnRate,
	}

	outcomes := []*TargetOutcome{&result.Near, &result.Far}
	for i, target := range plan.Targets() {
		if err := ctx.Err(); err != nil {
			return ComparisonResult{}, err
		}

		sim := ce.CalcEngine.Simulate(calculation.PlanParams(plan, scenario, target))

		*outcomes[i] = ce.metrics().CalculateOutcome(target, sim)
		ce.logger().Debugf("scenario %s target %s: reached=%t month=%d final=%s",
			scenario.Label, target.Name, sim.Reached(), outcomes[i].MonthsToGoal, sim.FinalNetWorth().StringFixed(2))
	}

	return result, nil
}

func (ce *CompareEngine) selectTemplates(options CompareOptions) ([]transform.Template, error) {
	registry := ce.TemplateRegistry
	if registry == nil {
		registry = transform.CreateBuiltInTemplates()
	}

	var templates []transform.Template
	if len(options.Scenarios) == 0 {
		templates = registry.Templates()
	} else {
		for _, name := range options.Scenarios {
			template, ok := registry.Get(name)
			if !ok {
				return nil, fmt.Errorf("template %s not found", name)
			}
			templates = append(templates, template)
		}
	}

	if len(options.CustomTransforms) > 0 {
		name := options.CustomName
		if name == "" {
			name = "Custom"
		}
		templates = append(templates, transform.Template{
			Name:        name,
			Description: "Base assumptions with custom adjustments",
			Transforms:  options.CustomTransforms,
		})
	}

	if len(templates) == 0 {
		return nil, fmt.Errorf("no scenarios selected")
	}
	return templates, nil
}

// baseName returns Base when it was run, otherwise the first scenario
func baseName(results []ComparisonResult) string {
	for _, r := range results {
		if r.ScenarioName == domain.ScenarioBase {
			return r.ScenarioName
		}
	}
	if len(results) > 0 {
		return results[0].ScenarioName
	}
	return ""
}

type fingerprintInput struct {
	Plan       *domain.PlanInputs `json:"plan"`
	Scenarios  []fingerprintStep  `json:"scenarios"`
	EngineRule string             `json:"engine_rule"`
}

type fingerprintStep struct {
	Name       string            `json:"name"`
	Transforms []fingerprintStep `json:"transforms,omitempty"`
	Params     any               `json:"params,omitempty"`
}

// engineRule versions the stepping procedure inside every fingerprint
const engineRule = "monthly-v1"

// Fingerprint hashes the canonical JSON of the plan and the scenario
// definitions into a cache key
func Fingerprint(plan *domain.PlanInputs, templates []transform.Template) (string, error) {
	input := fingerprintInput{Plan: plan, EngineRule: engineRule}
	for _, t := range templates {
		step := fingerprintStep{Name: t.Name}
		for _, tr := range t.Transforms {
			step.Transforms = append(step.Transforms, fingerprintStep{Name: tr.Name(), Params: tr})
		}
		input.Scenarios = append(input.Scenarios, step)
	}

	data, err := json.Marshal(input)
	if err != nil {
		return "", err
	}
	return strconv.FormatUint(xxhash.Sum64(data), 16), nil
}

func (ce *CompareEngine) loadCached(ctx context.Context, key string) (*ComparisonSet, bool) {
	if ce.Cache == nil {
		return nil, false
	}

	data, ok, err := ce.Cache.Load(ctx, key)
	if err != nil {
		ce.logger().Warnf("cache load failed: %v", err)
		return nil, false
	}
	if !ok {
		return nil, false
	}

	var compSet ComparisonSet
	if err := json.Unmarshal(data, &compSet); err != nil {
		ce.logger().Warnf("discarding unreadable cache entry %s: %v", key, err)
		return nil, false
	}

	ce.logger().Debugf("cache hit %s", key)
	return &compSet, true
}

func (ce *CompareEngine) storeCached(ctx context.Context, key string, compSet *ComparisonSet) {
	if ce.Cache == nil {
		return
	}

	data, err := json.Marshal(compSet)
	if err != nil {
		ce.logger().Warnf("cache encode failed: %v", err)
		return
	}
	if err := ce.Cache.Save(ctx, key, data); err != nil {
		ce.logger().Warnf("cache save failed: %v", err)
	}
}

func (ce *CompareEngine) metrics() *MetricsCalculator {
	if ce.MetricsCalculator == nil {
		return NewMetricsCalculator()
	}
	return ce.MetricsCalculator
}

func (ce *CompareEngine) logger() calculation.Logger {
	if ce.Logger == nil {
		return calculation.NopLogger{}
	}
	return ce.Logger
}
