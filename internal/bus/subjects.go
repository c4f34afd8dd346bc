package bus

const (
	SubjectSolveRequest = "tlp.solve.request"

	StreamName   = "TLP_EVENTS"
	StreamMaxAge = "168h" // 7 days
)

func SubjectSolveCompleted(id string) string { return "tlp.solve." + id + ".completed" }
func SubjectSolveFailed(id string) string    { return "tlp.solve." + id + ".failed" }

// streamSubjects are persisted by JetStream. The request subject is left out
// so the stream never answers a request with a publish ack.
var streamSubjects = []string{"tlp.solve.*.completed", "tlp.solve.*.failed"}
