package errors

import "fmt"

type Location struct {
	Line   uint
	Column uint
	Index  uint
}

func NewLocation() Location {
	return Location{
		Line:   1,
		Column: 1,
		Index:  0,
	}
}

func (self *Location) Advance(newline bool) {
	self.Index += 1
	if newline {
		self.Column = 1
		self.Line += 1
	} else {
		self.Column += 1
	}
}

func (self Location) Until(end Location, filename string) Span {
	return Span{
		Start:    self,
		End:      end,
		Filename: filename,
	}
}

// All ranges inclusive
type Span struct {
	Start    Location `json:"start"`
	End      Location `json:"end"`
	Filename string   `json:"filename"`
}

func (self Span) String() string {
	return fmt.Sprintf("%s:%d:%d", self.Filename, self.Start.Line, self.Start.Column)
}
