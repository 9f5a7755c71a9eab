package quiz_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/persona-lab/archetype-engine/internal/quiz"
)

const yamlQuiz = `id: field-notes
title: Field Notes
edition: apocalypse.v1
questions:
  - id: q1
    text: The sirens start. You...
    answers:
      - id: a
        text: Turn the radio up
        points: {ostrich: 1.5}
      - id: b
        text: Grab the go-bag
        points: {prepper: 1.5}
  - id: q2
    text: Your pantry holds...
    weight: 2
    answers:
      - id: a
        text: Snacks for tonight
        points: {hedonist: 1}
      - id: b
        text: Six months of rice
        points: {prepper: 1, homesteader: 0.5}
`

const jsonQuiz = `{
  "id": "compact",
  "title": "Compact Quiz",
  "questions": [
    {"id": "q1", "text": "Pick one", "answers": [
      {"id": "a", "text": "Left", "points": {"nomad": 1}},
      {"id": "b", "text": "Right", "points": {"guardian": 1}}
    ]}
  ]
}`

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadFileYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "field-notes.yaml", yamlQuiz)

	q, err := quiz.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if q.ID != "field-notes" || q.Edition != "apocalypse.v1" {
		t.Fatalf("unexpected quiz header: %+v", q)
	}
	if len(q.Questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(q.Questions))
	}
	if q.Questions[1].Weight != 2 {
		t.Fatalf("weight lost in parse: %v", q.Questions[1].Weight)
	}
	if q.Questions[1].Answers[1].Points["homesteader"] != 0.5 {
		t.Fatalf("points lost in parse: %+v", q.Questions[1].Answers[1].Points)
	}
}

func TestLoadFileJSON(t *testing.T) {
	path := writeFile(t, t.TempDir(), "compact.json", jsonQuiz)

	q, err := quiz.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if q.ID != "compact" || len(q.Questions) != 1 {
		t.Fatalf("unexpected quiz: %+v", q)
	}
}

func TestLoadFileRejectsInvalidQuiz(t *testing.T) {
	// q1 has no answers
	bad := `id: broken
title: Broken
questions:
  - id: q1
    text: No way out
    answers: []
`
	path := writeFile(t, t.TempDir(), "broken.yaml", bad)

	_, err := quiz.LoadFile(path)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if !strings.Contains(err.Error(), "no answers") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoadFileUnsupportedExtension(t *testing.T) {
	path := writeFile(t, t.TempDir(), "quiz.toml", "id = 'nope'")
	if _, err := quiz.LoadFile(path); err == nil {
		t.Fatalf("expected error for unsupported extension")
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b-second.json", jsonQuiz)
	writeFile(t, dir, "a-first.yaml", yamlQuiz)
	writeFile(t, dir, "notes.txt", "not a quiz")

	quizzes, err := quiz.LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if len(quizzes) != 2 {
		t.Fatalf("expected 2 quizzes, got %d", len(quizzes))
	}
	// filename order, not discovery order
	if quizzes[0].ID != "field-notes" || quizzes[1].ID != "compact" {
		t.Fatalf("unexpected order: %s, %s", quizzes[0].ID, quizzes[1].ID)
	}
}

func TestLoadDirFailsOnBadFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "good.json", jsonQuiz)
	writeFile(t, dir, "bad.yaml", "questions: [")

	if _, err := quiz.LoadDir(dir); err == nil {
		t.Fatalf("expected parse failure to fail the whole load")
	}
}
