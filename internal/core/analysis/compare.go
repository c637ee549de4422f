package analysis

// RiskAssessment is the overall verdict of a document comparison.
type RiskAssessment struct {
	Rating  string `json:"rating"`
	Summary string `json:"summary"`
}

// ModifiedClause describes a clause present in both documents with
// different terms.
type ModifiedClause struct {
	ClauseTitle    string `json:"clauseTitle"`
	OldTextSummary string `json:"oldTextSummary"`
	NewTextSummary string `json:"newTextSummary"`
	RiskAnalysis   string `json:"riskAnalysis"`
}

// Comparison is the result of comparing an old and a new version of a
// document.
type Comparison struct {
	OverallRiskAssessment RiskAssessment   `json:"overallRiskAssessment"`
	NewClauses            []Clause         `json:"newClauses"`
	RemovedClauses        []Clause         `json:"removedClauses"`
	ModifiedClauses       []ModifiedClause `json:"modifiedClauses"`
}

// Unchanged reports whether the comparison found no differences at all.
func (c Comparison) Unchanged() bool {
	return len(c.NewClauses) == 0 && len(c.RemovedClauses) == 0 && len(c.ModifiedClauses) == 0
}
