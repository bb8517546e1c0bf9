package trace

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// LogEmitter writes structured log output to a writer, in either a
// human-readable text form or one JSON object per line.
//
// Example text output:
//
//	[dfs_discover] ctx=ctx-1 cell=nullable(S) discovery=1
//
// Example JSON output:
//
//	{"ContextID":"ctx-1","CellName":"nullable(S)","Kind":"dfs_discover","DiscoveryTime":1,"FinishTime":0,"Meta":null,"Err":null}
type LogEmitter struct {
	writer   io.Writer
	jsonMode bool
}

// NewLogEmitter creates a LogEmitter writing to writer (os.Stdout if nil).
// jsonMode selects JSON-lines output over the default text format.
func NewLogEmitter(writer io.Writer, jsonMode bool) *LogEmitter {
	if writer == nil {
		writer = os.Stdout
	}
	return &LogEmitter{writer: writer, jsonMode: jsonMode}
}

// Emit writes a single event.
func (l *LogEmitter) Emit(e Event) {
	if l.jsonMode {
		enc, err := json.Marshal(e)
		if err != nil {
			return
		}
		fmt.Fprintln(l.writer, string(enc))
		return
	}

	fmt.Fprintf(l.writer, "[%s] ctx=%s cell=%s", e.Kind, e.ContextID, e.CellName)
	if e.DiscoveryTime != 0 {
		fmt.Fprintf(l.writer, " discovery=%d", e.DiscoveryTime)
	}
	if e.FinishTime != 0 {
		fmt.Fprintf(l.writer, " finish=%d", e.FinishTime)
	}
	if e.Err != nil {
		fmt.Fprintf(l.writer, " err=%q", e.Err.Error())
	}
	fmt.Fprintln(l.writer)
}

// EmitBatch writes each event in order.
func (l *LogEmitter) EmitBatch(events []Event) {
	for _, e := range events {
		l.Emit(e)
	}
}
