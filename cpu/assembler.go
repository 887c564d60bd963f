// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"strconv"
	"strings"

	"github.com/xrash/smetrics"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// SUGGEST_DISTANCE is the largest edit distance at which an unknown
// mnemonic is reported with a suggested replacement.
const SUGGEST_DISTANCE = 2

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO": "0",
}

var parenRe = regexp.MustCompile(`\$\([^\$]*\)`)

// Assembler parses elfcode program text into a Program.
type Assembler struct {
	Verbose bool // If set, verbosely logs the assembler actions.

	predefine map[string]string // Predefines
	Equate    map[string]string // Map of equates.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// valueOf returns the value of a simple word.
func (asm *Assembler) valueOf(word string) (value int, err error) {
	v64, err := strconv.ParseInt(word, 0, 64)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	value = int(v64)
	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int, err error) {
	thread := starlark.Thread{Name: "asm"}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var v int
		v, err = asm.valueOf(str)
		if err != nil {
			// Only integer equates are visible to expressions.
			err = nil
			continue
		}
		pred[key] = starlark.MakeInt(v)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value = int(st_int64)
	return
}

// suggest returns the known mnemonic closest to word, if any is near enough.
func suggest(word string) (mnemonic string) {
	best := SUGGEST_DISTANCE + 1
	for _, op := range Opcodes() {
		dist := smetrics.WagnerFischer(strings.ToLower(word), op.String(), 1, 1, 1)
		if dist < best {
			best = dist
			mnemonic = op.String()
		}
	}
	return
}

// parseLine expands equates and expressions on a single line, returning its words.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do $() evaluations
	line = parenRe.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			if err == nil {
				err = _err
			}
			return str
		}
		return fmt.Sprintf("%d", value)
	})
	if err != nil {
		return
	}

	words = strings.Fields(line)

	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = words[:0]
		return
	}

	for n, word := range words {
		equate, ok := asm.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	return
}

// parseIp parses the `#ip N` directive.
func (asm *Assembler) parseIp(prog *Program, line string, lineno int) (err error) {
	if prog.IpBound {
		err = ErrIpDuplicate
		return
	}
	if len(prog.Instructions) != 0 {
		err = ErrIpLate
		return
	}

	words, err := asm.parseLine(strings.TrimPrefix(line, "#ip"), lineno)
	if err != nil {
		return
	}
	if len(words) != 1 {
		err = ErrIpDirective
		return
	}

	reg, err := asm.valueOf(words[0])
	if err != nil {
		return
	}
	if reg < 0 {
		err = ErrIpDirective
		return
	}

	err = prog.Bind(reg)
	return
}

// parseWords converts the words of a line into an instruction.
func (asm *Assembler) parseWords(words []string) (inst Instruction, err error) {
	op, ok := ParseOpcode(words[0])
	if !ok {
		err = ErrMnemonic{Word: words[0], Suggest: suggest(words[0])}
		return
	}

	if len(words) != 4 {
		err = ErrOperandCount
		return
	}

	var args [3]int
	for n, word := range words[1:] {
		args[n], err = asm.valueOf(word)
		if err != nil {
			return
		}
	}

	inst = Instruction{Op: op, A: args[0], B: args[1], C: args[2]}
	return
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
			prog = nil
		}
	}()

	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	prog = &Program{}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		text_comment := strings.Split(text, ";")
		line = strings.TrimSpace(text_comment[0])

		if strings.HasPrefix(line, "#ip") {
			err = asm.parseIp(prog, line, lineno)
			if err != nil {
				return
			}
			continue
		}

		var words []string
		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		if len(words) == 0 {
			continue
		}

		var inst Instruction
		inst, err = asm.parseWords(words)
		if err != nil {
			return
		}

		prog.Instructions = append(prog.Instructions, inst)
		prog.LineNo = append(prog.LineNo, lineno)
	}

	err = scanner.Err()

	return
}
