package naviri

import (
	"context"
	"errors"
	"sync"
)

// countingRunner answers from a fixed table and counts runs per topic.
// Topics missing from the table fail with exit code 1.
type countingRunner struct {
	mu     sync.Mutex
	output map[string]string
	calls  map[string]int
}

func newCountingRunner(output map[string]string) *countingRunner {
	return &countingRunner{output: output, calls: make(map[string]int)}
}

func (r *countingRunner) Run(_ context.Context, topic string) (RunResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls[topic]++

	res := RunResult{CommandLine: "ri -f ansi -T '" + topic + "'"}
	out, ok := r.output[topic]
	if !ok {
		res.Output = "Nothing known about " + topic + "\n"
		res.ExitCode = 1
		return res, nil
	}
	res.Output = out
	return res, nil
}

func (r *countingRunner) Calls(topic string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls[topic]
}

// mapFetcher serves documentation straight from a map.
type mapFetcher map[string]string

func (f mapFetcher) Fetch(ctx context.Context, topic string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	text, ok := f[topic]
	if !ok {
		return "", errTopicMissing
	}
	return text, nil
}

var errTopicMissing = errors.New("topic missing")

// load navigates s to topic and completes the request synchronously.
func load(s *Session, topic string) {
	finish(s, s.Navigate(topic))
}

// finish runs req and applies it, as the UI does from its worker goroutine.
func finish(s *Session, req *Request) {
	if req == nil {
		return
	}
	text, err := req.Run()
	s.Complete(req, text, err)
}

// arrayDoc mimics ri's page for Array, already decoded.
const arrayDoc = `= Array < Object

Includes:
  Enumerable(all?, any?, chunk)

Class methods:
  new, try_convert

Instance methods:
  flatten, push, sort
`

var testDocs = mapFetcher{
	"Array":           arrayDoc,
	"Array#flatten":   "= Array#flatten\n\nReturns a new array that is a one-dimensional flattening.\n",
	"Array::new":      "= Array::new\n\nReturns a new array.\n",
	"Enumerable#any?": "= Enumerable#any?\n\nPasses each element to the block.\n",
	"String":          "= String < Object\n\nA String object holds bytes.\n",
}
