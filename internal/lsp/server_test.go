package lsp

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"testing"
)

func frame(t *testing.T, buf *bytes.Buffer, msg any) {
	t.Helper()
	payload, err := json.Marshal(msg)
	if err != nil {
		t.Fatal(err)
	}
	if err := writeMessage(buf, payload); err != nil {
		t.Fatal(err)
	}
}

func drain(t *testing.T, out *bytes.Buffer) []rpcMessage {
	t.Helper()
	var msgs []rpcMessage
	reader := bufio.NewReader(bytes.NewReader(out.Bytes()))
	for {
		payload, err := readMessage(reader)
		if errors.Is(err, io.EOF) {
			return msgs
		}
		if err != nil {
			t.Fatal(err)
		}
		var msg rpcMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			t.Fatal(err)
		}
		msgs = append(msgs, msg)
	}
}

func TestServerPublishesDiagnosticsOnOpen(t *testing.T) {
	var in, out bytes.Buffer
	frame(t, &in, map[string]any{
		"jsonrpc": "2.0", "id": 1, "method": "initialize",
		"params": map[string]any{},
	})
	frame(t, &in, map[string]any{
		"jsonrpc": "2.0", "method": "textDocument/didOpen",
		"params": didOpenTextDocumentParams{
			TextDocument: textDocumentItem{
				URI:     "file:///tale.tw",
				Version: 1,
				Text:    "(print: \"oops",
			},
		},
	})

	srv := NewServer(&in, &out, ServerOptions{})
	if err := srv.Run(); err != nil {
		t.Fatal(err)
	}

	msgs := drain(t, &out)
	if len(msgs) != 2 {
		t.Fatalf("messages = %d, want initialize response + publish", len(msgs))
	}
	if msgs[1].Method != "textDocument/publishDiagnostics" {
		t.Fatalf("second message method = %q", msgs[1].Method)
	}

	var params publishDiagnosticsParams
	if err := json.Unmarshal(msgs[1].Params, &params); err != nil {
		t.Fatal(err)
	}
	found := false
	for _, d := range params.Diagnostics {
		if d.Code == "LEX1002" {
			found = true
			if d.Severity != 1 {
				t.Errorf("severity = %d, want error", d.Severity)
			}
		}
	}
	if !found {
		t.Errorf("unterminated string not published: %+v", params.Diagnostics)
	}
}

func TestServerClearsDiagnosticsOnClose(t *testing.T) {
	var in, out bytes.Buffer
	frame(t, &in, map[string]any{
		"jsonrpc": "2.0", "method": "textDocument/didOpen",
		"params": didOpenTextDocumentParams{
			TextDocument: textDocumentItem{URI: "file:///t.tw", Version: 1, Text: "(x: ["},
		},
	})
	frame(t, &in, map[string]any{
		"jsonrpc": "2.0", "method": "textDocument/didClose",
		"params": didCloseTextDocumentParams{
			TextDocument: textDocumentIdentifier{URI: "file:///t.tw"},
		},
	})

	srv := NewServer(&in, &out, ServerOptions{})
	if err := srv.Run(); err != nil {
		t.Fatal(err)
	}

	msgs := drain(t, &out)
	if len(msgs) != 2 {
		t.Fatalf("messages = %d, want publish + clear", len(msgs))
	}
	var params publishDiagnosticsParams
	if err := json.Unmarshal(msgs[1].Params, &params); err != nil {
		t.Fatal(err)
	}
	if len(params.Diagnostics) != 0 {
		t.Errorf("close did not clear diagnostics: %+v", params.Diagnostics)
	}
}

func TestServerExitHandshake(t *testing.T) {
	var in, out bytes.Buffer
	frame(t, &in, map[string]any{"jsonrpc": "2.0", "id": 1, "method": "shutdown"})
	frame(t, &in, map[string]any{"jsonrpc": "2.0", "method": "exit"})

	srv := NewServer(&in, &out, ServerOptions{})
	if err := srv.Run(); !errors.Is(err, ErrExit) {
		t.Fatalf("Run = %v, want ErrExit", err)
	}
}
