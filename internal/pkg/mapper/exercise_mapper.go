package mapper

import (
	httpEntity "github.com/evandrarf/tulis-be/internal/delivery/http/entity"
	dbEntity "github.com/evandrarf/tulis-be/internal/entity"
)

// ToExerciseResponse - Convert DB entity ke response, huruf ikut jika sudah di-preload
func ToExerciseResponse(e *dbEntity.Exercise) httpEntity.ExerciseResponse {
	res := httpEntity.ExerciseResponse{
		ID:            e.ID,
		LearnerID:     e.LearnerID,
		RequestedText: e.RequestedText,
		SubmittedText: e.SubmittedText,
		Level:         string(e.Level),
		Category:      e.Category,
		Score:         e.Score,
		Feedback:      e.Feedback,
		RecognizedBy:  e.RecognizedBy,
		InCategory:    e.InCategory,
		GeneratedAt:   e.GeneratedAt,
		SubmittedAt:   e.SubmittedAt,
	}
	if len(e.Letters) > 0 {
		res.Letters = ToLetters(e.Letters)
	}
	return res
}

func ToExerciseResponses(exercises []dbEntity.Exercise) []httpEntity.ExerciseResponse {
	out := make([]httpEntity.ExerciseResponse, 0, len(exercises))
	for i := range exercises {
		out = append(out, ToExerciseResponse(&exercises[i]))
	}
	return out
}

func ToLetters(letters []dbEntity.SubmittedLetter) []httpEntity.Letter {
	out := make([]httpEntity.Letter, 0, len(letters))
	for _, l := range letters {
		out = append(out, httpEntity.Letter{
			Position:        l.Position,
			ExpectedLetter:  l.ExpectedLetter,
			SubmittedLetter: l.SubmittedLetter,
			Score:           l.Score,
		})
	}
	return out
}
