// Command pbcoreshell is an interactive REPL for poking at pbcore's
// demo message shapes (examplepb) without writing Go — adapted from
// shell/gshell.go's readline-driven loop (prompt, PrefixCompleter,
// Ctrl-Z-blocking filterInput, Ctrl-C-to-exit), with the teacher's
// remote-node console protocol replaced by direct in-process
// encode/decode calls against codec.EncodeState/DecodeState.
package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/liangmanlin/readline"
	"github.com/pkg/errors"

	"github.com/tablecodec/pbcore/arena"
	"github.com/tablecodec/pbcore/codec"
	"github.com/tablecodec/pbcore/descriptor"
	"github.com/tablecodec/pbcore/examplepb"
	"github.com/tablecodec/pbcore/message"
	"github.com/tablecodec/pbcore/ptr"
)

var tables = map[string]*descriptor.Table{
	"simple":   examplepb.Simple,
	"name":     examplepb.WithName,
	"nested":   examplepb.Nested,
	"packed":   examplepb.Packed,
	"unpacked": examplepb.Unpacked,
	"choice":   examplepb.Choice,
	"wrapped":  examplepb.Wrapped,
}

func main() {
	completer := readline.NewPrefixCompleter(
		readline.PcItem("help"),
		readline.PcItem("tables"),
		readline.PcItem("encode-simple"),
		readline.PcItem("encode-name"),
		readline.PcItem("decode"),
		readline.PcItem("exit"),
	)
	l, err := readline.NewEx(&readline.Config{
		Prompt:              "\033[31mpbcore>\033[0m ",
		AutoComplete:        completer,
		InterruptPrompt:     "^C",
		EOFPrompt:           "exit",
		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		panic(err)
	}
	defer l.Close()

	fmt.Println("welcome to pbcoreshell")
	fmt.Println("commands: help, tables, encode-simple <int32>, encode-name <string>, decode <table> <hex>, exit")

	for {
		line, err := l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				break
			}
			continue
		} else if err == io.EOF {
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if err := dispatch(line); err != nil {
			fmt.Fprintln(l.Stderr(), err)
		}
	}
}

func filterInput(r rune) (rune, bool) {
	if r == readline.CharCtrlZ {
		return r, false
	}
	return r, true
}

func dispatch(line string) error {
	fields := strings.Fields(line)
	switch fields[0] {
	case "help":
		fmt.Println("commands: help, tables, encode-simple <int32>, encode-name <string>, decode <table> <hex>, exit")
	case "exit", "quit":
		panic(readline.ErrInterrupt)
	case "tables":
		for name := range tables {
			fmt.Println("  " + name)
		}
	case "encode-simple":
		return encodeSimple(fields)
	case "encode-name":
		return encodeName(fields)
	case "decode":
		return decodeTable(fields)
	default:
		return errors.Errorf("unknown command %q, try 'help'", fields[0])
	}
	return nil
}

func encodeSimple(fields []string) error {
	if len(fields) != 2 {
		return errors.New("usage: encode-simple <int32>")
	}
	v, err := strconv.ParseInt(fields[1], 10, 32)
	if err != nil {
		return errors.Wrap(err, "encode-simple")
	}
	a := arena.New(nil)
	f := &examplepb.Simple.Fields[0]
	inst, err := message.New(a, examplepb.Simple)
	if err != nil {
		return errors.Wrap(err, "encode-simple")
	}
	ptr.StoreInt32(message.FieldPtr(inst, f), int32(v))
	message.SetFieldPresent(inst, examplepb.Simple.HasBitWords, f)
	fmt.Println(hex.EncodeToString(codec.Encode(examplepb.Simple, inst)))
	return nil
}

func encodeName(fields []string) error {
	if len(fields) < 2 {
		return errors.New("usage: encode-name <string>")
	}
	name := strings.Join(fields[1:], " ")
	a := arena.New(nil)
	f := &examplepb.WithName.Fields[0]
	inst, err := message.New(a, examplepb.WithName)
	if err != nil {
		return errors.Wrap(err, "encode-name")
	}
	hdr := (*message.BytesHeader)(message.FieldPtr(inst, f))
	if err := message.SetBytes(a, hdr, []byte(name)); err != nil {
		return errors.Wrap(err, "encode-name")
	}
	message.SetFieldPresent(inst, examplepb.WithName.HasBitWords, f)
	fmt.Println(hex.EncodeToString(codec.Encode(examplepb.WithName, inst)))
	return nil
}

func decodeTable(fields []string) error {
	if len(fields) != 3 {
		return errors.New("usage: decode <table> <hex>")
	}
	tbl, ok := tables[fields[1]]
	if !ok {
		return errors.Errorf("unknown table %q, see 'tables'", fields[1])
	}
	data, err := hex.DecodeString(fields[2])
	if err != nil {
		return errors.Wrap(err, "decode")
	}
	a := arena.New(nil)
	d, inst, err := codec.NewDecodeState(a, tbl, codec.DefaultStackDepth)
	if err != nil {
		return errors.Wrap(err, "decode")
	}
	if err := d.Push(data); err != nil {
		return errors.Wrap(err, "decode")
	}
	if err := d.Finish(); err != nil {
		return errors.Wrap(err, "decode")
	}
	fmt.Printf("decoded %s: re-encodes to %s\n", fields[1], hex.EncodeToString(codec.Encode(tbl, inst)))
	return nil
}
