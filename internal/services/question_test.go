package services

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/vietlingo/vietlingo-backend/internal/repos"
	"github.com/vietlingo/vietlingo-backend/internal/repos/testutil"
	"github.com/vietlingo/vietlingo-backend/internal/types"
)

func newQuestionServiceForTest(t *testing.T) (QuestionService, *testDeps) {
	t.Helper()
	deps := newTestDeps(t)
	svc := NewQuestionService(
		deps.tx,
		repos.NewQuestionRepo(deps.tx, deps.log),
		repos.NewTopicRepo(deps.tx, deps.log),
		deps.log,
	)
	return svc, deps
}

func TestQuestionServiceCreateValidation(t *testing.T) {
	svc, _ := newQuestionServiceForTest(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, QuestionInput{VietnameseText: "", EnglishText: "x"}); err == nil {
		t.Fatal("expected error for missing vietnamese text")
	}
	if _, err := svc.Create(ctx, QuestionInput{
		VietnameseText: "Một",
		EnglishText:    "One",
		Difficulty:     "bogus",
	}); err == nil {
		t.Fatal("expected error for invalid difficulty")
	}

	question, err := svc.Create(ctx, QuestionInput{
		VietnameseText: "  Một  ",
		EnglishText:    "One",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if question.VietnameseText != "Một" {
		t.Fatalf("text not trimmed: %q", question.VietnameseText)
	}
	if question.Difficulty != types.DifficultyMedium {
		t.Fatalf("difficulty default = %q, want medium", question.Difficulty)
	}
}

func TestQuestionServiceRandom(t *testing.T) {
	svc, deps := newQuestionServiceForTest(t)
	ctx := context.Background()

	if _, err := svc.Random(ctx, types.DifficultyEasy, nil); err == nil {
		t.Fatal("expected error when no questions match")
	}

	topic := testutil.SeedTopic(t, ctx, deps.tx, "Random topic")
	seeded := testutil.SeedQuestion(t, ctx, deps.tx, &topic.ID, "Một", "One", types.DifficultyEasy)
	testutil.SeedQuestion(t, ctx, deps.tx, nil, "Hai", "Two", types.DifficultyHard)

	question, err := svc.Random(ctx, types.DifficultyEasy, &topic.ID)
	if err != nil {
		t.Fatalf("Random: %v", err)
	}
	if question.ID != seeded.ID {
		t.Fatalf("got question %s, want the only easy one %s", question.ID, seeded.ID)
	}

	if _, err := svc.Random(ctx, "bogus", nil); err == nil {
		t.Fatal("expected error for invalid difficulty")
	}
}

func TestQuestionServiceImport(t *testing.T) {
	svc, deps := newQuestionServiceForTest(t)
	ctx := context.Background()

	content := `Question: Tôi đi học
Answer: I go to school
Topic: Giáo dục
Status: Dễ

Question: Xin chào
Answer: Hello`

	result, err := svc.Import(ctx, "questions.txt", content)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if result.CreatedCount != 2 || result.ErrorCount != 0 {
		t.Fatalf("unexpected import result: %+v", result)
	}

	topicRepo := repos.NewTopicRepo(deps.tx, deps.log)
	topic, err := topicRepo.GetOrCreateByName(ctx, deps.tx, "Giáo dục", "unused")
	if err != nil {
		t.Fatalf("topic lookup: %v", err)
	}
	if topic.Description != "Chủ đề Giáo dục" {
		t.Fatalf("imported topic description = %q", topic.Description)
	}

	page, err := svc.List(ctx, repos.QuestionFilter{TopicID: &topic.ID})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if page.Count != 1 {
		t.Fatalf("imported question count = %d, want 1", page.Count)
	}
	if page.Results[0].Difficulty != types.DifficultyEasy {
		t.Fatalf("imported difficulty = %q, want easy", page.Results[0].Difficulty)
	}

	if _, err := svc.Import(ctx, "questions.csv", content); err == nil {
		t.Fatal("expected error for a non-txt file")
	}
	if _, err := svc.Import(ctx, "empty.txt", "   "); err == nil {
		t.Fatal("expected error for a file without questions")
	}
}

func TestQuestionServiceUpdateAndDelete(t *testing.T) {
	svc, deps := newQuestionServiceForTest(t)
	ctx := context.Background()

	q := testutil.SeedQuestion(t, ctx, deps.tx, nil, "Một", "One", types.DifficultyEasy)

	newText := "Number one"
	hard := types.DifficultyHard
	updated, err := svc.Update(ctx, q.ID, QuestionUpdate{EnglishText: &newText, Difficulty: &hard})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.EnglishText != "Number one" || updated.Difficulty != types.DifficultyHard {
		t.Fatalf("update not applied: %+v", updated)
	}
	if updated.VietnameseText != "Một" {
		t.Fatalf("untouched field changed: %q", updated.VietnameseText)
	}

	blank := "   "
	if _, err := svc.Update(ctx, q.ID, QuestionUpdate{EnglishText: &blank}); err == nil {
		t.Fatal("expected error for blank english text")
	}

	if err := svc.Delete(ctx, q.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := svc.Delete(ctx, q.ID); err == nil {
		t.Fatal("expected error deleting a missing question")
	}
	if _, err := svc.Get(ctx, uuid.New()); err == nil {
		t.Fatal("expected error for unknown question")
	}
}

func TestParseQuestionsFile(t *testing.T) {
	content := `Question: Tôi đi học
Answer: I go to school
Topic: Giáo dục
Status: Dễ

Question: Cô ấy đang nấu ăn
Answer: She is cooking
Topic: Nấu ăn
Status: Khó

Question: Xin chào
Answer: Hello`

	questions := parseQuestionsFile(content)
	if len(questions) != 3 {
		t.Fatalf("expected 3 questions, got %d", len(questions))
	}

	if questions[0].vietnamese != "Tôi đi học" || questions[0].english != "I go to school" {
		t.Fatalf("unexpected first question: %+v", questions[0])
	}
	if questions[0].topic != "Giáo dục" {
		t.Fatalf("expected topic %q, got %q", "Giáo dục", questions[0].topic)
	}
	if questions[0].difficulty != types.DifficultyEasy {
		t.Fatalf("expected easy, got %q", questions[0].difficulty)
	}
	if questions[1].difficulty != types.DifficultyHard {
		t.Fatalf("expected hard, got %q", questions[1].difficulty)
	}

	// No topic or status lines: topic empty, difficulty defaults to medium.
	if questions[2].topic != "" {
		t.Fatalf("expected empty topic, got %q", questions[2].topic)
	}
	if questions[2].difficulty != types.DifficultyMedium {
		t.Fatalf("expected medium default, got %q", questions[2].difficulty)
	}
}

func TestParseQuestionsFileEnglishStatus(t *testing.T) {
	content := `Question: Một
Answer: One
Status: easy

Question: Hai
Answer: Two
Status: hard

Question: Ba
Answer: Three
Status: something else`

	questions := parseQuestionsFile(content)
	if len(questions) != 3 {
		t.Fatalf("expected 3 questions, got %d", len(questions))
	}
	want := []string{types.DifficultyEasy, types.DifficultyHard, types.DifficultyMedium}
	for i, w := range want {
		if questions[i].difficulty != w {
			t.Fatalf("question %d: expected %q, got %q", i, w, questions[i].difficulty)
		}
	}
}

func TestParseQuestionsFileSkipsIncompleteBlocks(t *testing.T) {
	content := `Question: Chỉ có câu hỏi

Answer: only an answer

Question: Đủ cả hai
Answer: Both present


`
	questions := parseQuestionsFile(content)
	if len(questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(questions))
	}
	if questions[0].english != "Both present" {
		t.Fatalf("unexpected question kept: %+v", questions[0])
	}
}

func TestParseQuestionsFileEmpty(t *testing.T) {
	if got := parseQuestionsFile(""); len(got) != 0 {
		t.Fatalf("expected no questions, got %d", len(got))
	}
	if got := parseQuestionsFile("   \n\n  \n"); len(got) != 0 {
		t.Fatalf("expected no questions from blank content, got %d", len(got))
	}
}
