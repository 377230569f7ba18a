package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"os"
	"time"

	"github.com/vpbank/snmpcodec/snmp"
)

// newLogger builds the command's slog text logger. Logs always go to
// stderr so they never interleave with -json's machine-readable stdout.
func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
}

func main() {
	batchPath := flag.String("f", "", "path to YAML batch request file")
	jsonOutput := flag.Bool("json", false, "print responses as JSON instead of plain text")
	flag.Parse()

	logger := newLogger()

	if *batchPath == "" {
		fmt.Fprintln(os.Stderr, "usage: snmpdump -f <batch.yaml> [-json]")
		os.Exit(2)
	}

	bf, err := LoadBatchFile(*batchPath)
	if err != nil {
		logger.Error("loading batch file", "path", *batchPath, "err", err)
		os.Exit(1)
	}

	exitCode := 0
	var reqId int32 = 1
	for i, t := range bf.Targets {
		if err := runTarget(logger, t, reqId, *jsonOutput); err != nil {
			logger.Error("target failed", "index", i, "host", t.Host, "err", err)
			exitCode = 1
		}
		reqId++
	}
	os.Exit(exitCode)
}

func runTarget(logger *slog.Logger, t Target, reqId int32, jsonOutput bool) error {
	oids := make([][]uint32, len(t.Oids))
	for i, s := range t.Oids {
		ids, err := ParseOid(s)
		if err != nil {
			return fmt.Errorf("oid %d: %w", i, err)
		}
		oids[i] = ids
	}

	w := snmp.NewWriter()
	switch t.Request {
	case RequestGet:
		snmp.BuildGet(w, []byte(t.Community), reqId, oids)
	case RequestGetNext:
		snmp.BuildGetNext(w, []byte(t.Community), reqId, oids)
	case RequestGetBulk:
		snmp.BuildGetBulk(w, []byte(t.Community), reqId, t.NonRepeaters, t.MaxRepetitions, oids)
	default:
		return fmt.Errorf("unknown request kind %q", t.Request)
	}

	conn, err := net.Dial("udp", t.Host)
	if err != nil {
		return fmt.Errorf("dial %s: %w", t.Host, err)
	}
	defer conn.Close()

	deadline := time.Now().Add(time.Duration(t.TimeoutMs) * time.Millisecond)
	if err := conn.SetDeadline(deadline); err != nil {
		return fmt.Errorf("set deadline: %w", err)
	}

	if _, err := conn.Write(w.Bytes()); err != nil {
		return fmt.Errorf("send: %w", err)
	}

	resp := make([]byte, snmp.DefaultBufferSize)
	n, err := conn.Read(resp)
	if err != nil {
		return fmt.Errorf("receive: %w", err)
	}

	pdu, err := snmp.ParsePdu(resp[:n])
	if err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return printPdu(pdu, jsonOutput)
}

func printPdu(pdu snmp.Pdu, jsonOutput bool) error {
	if jsonOutput {
		b, err := json.Marshal(pdu)
		if err != nil {
			return fmt.Errorf("marshal json: %w", err)
		}
		fmt.Println(string(b))
		return nil
	}

	fmt.Printf("%s reqId=%d errorStatus=%d errorIndex=%d\n", pdu.Type, pdu.ReqId, pdu.ErrorStatus, pdu.ErrorIndex)
	vbs := pdu.Varbinds.Clone()
	for {
		vb, ok := vbs.Next()
		if !ok {
			break
		}
		fmt.Printf("%s\n  = %s\n", vb.Name, vb.Value)
	}
	return nil
}
