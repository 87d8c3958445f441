package compare

import (
	"encoding/json"

	"github.com/rgehrsitz/networth/internal/domain"
)

// JSONFormatter formats comparison results as JSON
type JSONFormatter struct {
	Pretty  bool // If true, format with indentation
	Summary bool // If true, omit the monthly records of every run
}

// Format generates JSON output for comparison results
func (jf *JSONFormatter) Format(compSet *ComparisonSet) (string, error) {
	payload := compSet
	if jf.Summary {
		payload = withoutRecords(compSet)
	}

	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(payload, "", "  ")
	} else {
		data, err = json.Marshal(payload)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}

func withoutRecords(compSet *ComparisonSet) *ComparisonSet {
	trimmed := *compSet
	trimmed.Results = make([]ComparisonResult, len(compSet.Results))
	for i, res := range compSet.Results {
		for _, o := range res.Outcomes() {
			if o.Result == nil {
				continue
			}
			o.Result = &domain.SimulationResult{Target: o.Result.Target, Hit: o.Result.Hit}
		}
		trimmed.Results[i] = res
	}
	return &trimmed
}
