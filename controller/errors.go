package controller

import "errors"

var (
	ErrParseRequest = errors.New("failed to parse request")

	ErrUserRegister  = errors.New("failed to register user")
	ErrGenerateToken = errors.New("failed to generate token")
	ErrUserLogin     = errors.New("failed to login")

	ErrCreateSession      = errors.New("failed to create a chat session")
	ErrGetSessions        = errors.New("failed to get chat sessions")
	ErrDeleteSession      = errors.New("failed to delete a chat session")
	ErrGetSessionMessages = errors.New("failed to get session messages")
	ErrUpdateSessionTitle = errors.New("failed to update session title")

	ErrChat = errors.New("error while answering question")

	ErrGetAudioFile     = errors.New("failed to get audio file")
	ErrVoiceRecognition = errors.New("failed to recognize audio")

	ErrInvalidFiles           = errors.New("file validation failed")
	ErrReadFile               = errors.New("failed to read uploaded file")
	ErrGeneratePolicyToken    = errors.New("failed to generate policy token")
	ErrGetDocumentMetadata    = errors.New("failed to get document metadata")
	ErrUploadDocumentMetadata = errors.New("failed to upload document metadata")
	ErrDeleteDocument         = errors.New("failed to delete document")
	ErrGetPreSignedURL        = errors.New("failed to get presigned url")
	ErrSearchDocumentMetadata = errors.New("failed to search document metadata")
)
