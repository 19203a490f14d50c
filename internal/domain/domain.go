package domain

import (
	"github.com/yungbote/codequest-backend/internal/domain/learning"
	"github.com/yungbote/codequest-backend/internal/domain/user"
)

type User = user.User

type Question = learning.Question
type Progress = learning.Progress
type Language = learning.Language

const (
	ProgressStatusSolved    = "solved"
	ProgressStatusAttempted = "attempted"
)
