package blog

// shown with every failed generation, in this order
var FailureHints = []string{
	"verify the generation server is running and the model is available (pull it, then start the server)",
	"if the server runs on a different host, set the correct endpoint.",
}

// why a generation produced no text
type Failure struct {
	Message string
	Hints   []string
}

// the outcome of one submission. Text is the model output exactly as
// received. Failure is set instead when the call did not produce text.
type Result struct {
	Text    string
	Failure *Failure
}

func Succeeded(text string) Result {
	return Result{Text: text}
}

func Failed(err error) Result {
	return Result{
		Failure: &Failure{
			Message: err.Error(),
			Hints:   append([]string(nil), FailureHints...),
		},
	}
}

func (r Result) Failed() bool {
	return r.Failure != nil
}
