package handlers

const (
	ErrInvalidJSON         = "Invalid JSON body"
	ErrInvalidDan          = "Dan must be between 0 and 9"
	ErrInvalidMode         = "Mode must be dan, weak or mistakes"
	ErrNoQuiz              = "No quiz in progress"
	ErrAnswerFirst         = "Answer the current question first"
	ErrNoResult            = "No result yet"
	ErrUnauthorized        = "Unauthorized"
	ErrWrongPIN            = "Wrong PIN"
	ErrInternalServerError = "Internal server error"

	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)
