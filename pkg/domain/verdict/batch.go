package verdict

import (
	"encoding/json"
)

// BatchItem is the outcome for one URL of a batch: a verdict or an error.
type BatchItem struct {
	Index   int
	URL     string
	Verdict *Verdict
	Err     error
}

func (i BatchItem) Failed() bool {
	return i.Verdict == nil
}

type batchError struct {
	Index      int    `json:"index"`
	URL        string `json:"url"`
	Error      string `json:"error"`
	Prediction string `json:"prediction"`
	RiskScore  int    `json:"risk_score"`
}

type batchVerdict struct {
	Index int `json:"index"`
	*Verdict
}

func (i BatchItem) MarshalJSON() ([]byte, error) {
	if i.Verdict != nil {
		return json.Marshal(batchVerdict{Index: i.Index, Verdict: i.Verdict})
	}
	msg := "unknown error"
	if i.Err != nil {
		msg = i.Err.Error()
	}
	return json.Marshal(batchError{
		Index:      i.Index,
		URL:        i.URL,
		Error:      msg,
		Prediction: "error",
		RiskScore:  -1,
	})
}

type Stats struct {
	Phishing   int `json:"phishing"`
	Suspicious int `json:"suspicious"`
	Legitimate int `json:"legitimate"`
	Error      int `json:"error"`
}

func (s *Stats) Add(item BatchItem) {
	if item.Failed() {
		s.Error++
		return
	}
	switch item.Verdict.Prediction {
	case LabelPhishing:
		s.Phishing++
	case LabelSuspicious:
		s.Suspicious++
	default:
		s.Legitimate++
	}
}

type BatchResult struct {
	Results     []BatchItem `json:"results"`
	Count       int         `json:"count"`
	ThreatCount int         `json:"threat_count"`
	Truncated   bool        `json:"truncated"`
	Stats       Stats       `json:"stats"`
}

// NewBatchResult computes the counters for already ordered items.
func NewBatchResult(items []BatchItem, truncated bool) *BatchResult {
	res := &BatchResult{
		Results:   items,
		Count:     len(items),
		Truncated: truncated,
	}
	if res.Results == nil {
		res.Results = []BatchItem{}
	}
	for _, item := range items {
		res.Stats.Add(item)
	}
	res.ThreatCount = res.Stats.Phishing + res.Stats.Suspicious
	return res
}
