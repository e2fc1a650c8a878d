package ad

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"pomelo/internal/model/ad"
)

func TestWriteScoresCSV(t *testing.T) {
	doc := &ad.EvaluationDocument{
		Summary: ad.EvaluationSummary{Brand: "Northwind"},
		Evaluations: []ad.StyleEvaluation{
			{
				AdStyle: "Emotional Storytelling",
				Evaluations: []ad.ConceptEvaluation{
					{Score: 91, Model: "gpt-5.1", Template: "cinematic", Strengths: []string{"arc", "pacing"}},
					{Score: 77, Model: "claude-sonnet-4-5", Template: "direct", Weaknesses: []string{"flat ending"}},
				},
			},
			{
				AdStyle: "Comedic",
				Evaluations: []ad.ConceptEvaluation{
					{Score: 84, Model: "gpt-5.1", Template: "direct"},
				},
			},
		},
	}

	path := filepath.Join(t.TempDir(), "scores", "northwind_scores.csv")
	if err := writeScoresCSV(path, doc); err != nil {
		t.Fatalf("writeScoresCSV() error = %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}

	if len(rows) != 4 {
		t.Fatalf("len(rows) = %d, want 4 (header + 3)", len(rows))
	}
	if rows[0][0] != "Brand" || rows[0][5] != "Rank" {
		t.Errorf("header = %v, want Brand.../Rank at columns 0 and 5", rows[0])
	}

	// 组内按既有顺序写出，名次从 1 起；换组后名次重新开始
	checks := []struct {
		row   int
		style string
		score string
		rank  string
	}{
		{1, "Emotional Storytelling", "91", "1"},
		{2, "Emotional Storytelling", "77", "2"},
		{3, "Comedic", "84", "1"},
	}
	for _, c := range checks {
		if rows[c.row][1] != c.style || rows[c.row][4] != c.score || rows[c.row][5] != c.rank {
			t.Errorf("row %d = %v, want style=%s score=%s rank=%s",
				c.row, rows[c.row], c.style, c.score, c.rank)
		}
	}
	if rows[1][0] != "Northwind" {
		t.Errorf("brand column = %q, want Northwind", rows[1][0])
	}
	if rows[1][6] != "arc, pacing" {
		t.Errorf("strengths column = %q, want %q", rows[1][6], "arc, pacing")
	}
}
