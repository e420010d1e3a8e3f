package model

// GenerateRequest represents a password generation request from a front end.
// Pointer bools allow distinguishing between missing (nil -> configured default) and explicit false.
// A zero Length means the configured default length.
type GenerateRequest struct {
	Length      int   `json:"length"`
	Uppercase   *bool `json:"uppercase"`
	Lowercase   *bool `json:"lowercase"`
	Digits      *bool `json:"digits"`
	Punctuation *bool `json:"punctuation"`
	Copy        bool  `json:"copy"`
}

// GenerateResponse represents a password generation response.
type GenerateResponse struct {
	Password string `json:"password"`
	Length   int    `json:"length"`
	Copied   bool   `json:"copied"`
}
