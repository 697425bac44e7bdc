package interpreter

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Host supplies the console services a program consumes.
type Host interface {
	Output(line string)
	Input() (string, error)
}

// ConsoleHost reads lines from an input stream and writes lines to an output stream.
type ConsoleHost struct {
	in  *bufio.Reader
	out io.Writer
}

func NewConsoleHost(in io.Reader, out io.Writer) *ConsoleHost {
	return &ConsoleHost{in: bufio.NewReader(in), out: out}
}

func (h *ConsoleHost) Output(line string) {
	fmt.Fprintln(h.out, line)
}

func (h *ConsoleHost) Input() (string, error) {
	line, err := h.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// BufferHost serves canned input lines and records output in memory.
type BufferHost struct {
	input  []string
	output []string
}

func NewBufferHost(input ...string) *BufferHost {
	return &BufferHost{input: append([]string(nil), input...)}
}

func (h *BufferHost) Output(line string) {
	h.output = append(h.output, line)
}

func (h *BufferHost) Input() (string, error) {
	if len(h.input) == 0 {
		return "", io.EOF
	}
	line := h.input[0]
	h.input = h.input[1:]
	return line, nil
}

// Lines returns everything written so far.
func (h *BufferHost) Lines() []string {
	return append([]string(nil), h.output...)
}
