package rpc

import (
	"context"
	"strings"
	"testing"

	"github.com/jhump/protoreflect/dynamic"

	"github.com/ivylang/ivyc/internal/config"
)

func TestParseSchemaDescribesCodegenService(t *testing.T) {
	fd, err := parseSchema()
	if err != nil {
		t.Fatalf("parseSchema: %v", err)
	}
	services := fd.GetServices()
	if len(services) != 1 || services[0].GetName() != "CodegenService" {
		t.Fatalf("expected a single CodegenService, got %v", services)
	}
	md := services[0].FindMethodByName("Translate")
	if md == nil {
		t.Fatal("expected a Translate method on CodegenService")
	}
}

func TestServiceDescBuildsHandler(t *testing.T) {
	svc := New(config.Defaults(), nil)
	sd, err := svc.ServiceDesc()
	if err != nil {
		t.Fatalf("ServiceDesc: %v", err)
	}
	if sd.ServiceName != "ivyc.CodegenService" {
		t.Errorf("ServiceName = %q, want ivyc.CodegenService", sd.ServiceName)
	}
	if len(sd.Methods) != 1 || sd.Methods[0].MethodName != "Translate" {
		t.Fatalf("expected one Translate method, got %v", sd.Methods)
	}
}

func TestHandleTranslateSuccess(t *testing.T) {
	fd, err := parseSchema()
	if err != nil {
		t.Fatal(err)
	}
	md := fd.GetServices()[0].FindMethodByName("Translate")

	req := dynamic.NewMessage(md.GetInputType())
	req.SetFieldByName("source", `{"kind":"nil","line":1}`)
	req.SetFieldByName("options_yaml", "")

	svc := New(config.Defaults(), nil)
	resp, err := svc.handleTranslate(context.Background(), md, req)
	if err != nil {
		t.Fatalf("handleTranslate: %v", err)
	}
	output := resp.GetFieldByName("output").(string)
	if !strings.Contains(output, "function(__opal)") {
		t.Errorf("output missing module prologue: %q", output)
	}
	diags := resp.GetFieldByName("diagnostics")
	if diags != nil {
		if list, ok := diags.([]interface{}); ok && len(list) != 0 {
			t.Errorf("expected no diagnostics on success, got %v", list)
		}
	}
}

func TestHandleTranslateDecodeFailure(t *testing.T) {
	fd, err := parseSchema()
	if err != nil {
		t.Fatal(err)
	}
	md := fd.GetServices()[0].FindMethodByName("Translate")

	req := dynamic.NewMessage(md.GetInputType())
	req.SetFieldByName("source", "not json")
	req.SetFieldByName("options_yaml", "")

	svc := New(config.Defaults(), nil)
	resp, err := svc.handleTranslate(context.Background(), md, req)
	if err != nil {
		t.Fatalf("handleTranslate should report decode failure via diagnostics, not an RPC error: %v", err)
	}
	diags, ok := resp.GetFieldByName("diagnostics").([]interface{})
	if !ok || len(diags) == 0 {
		t.Fatal("expected at least one diagnostic for malformed source")
	}
}

func TestHandleTranslateInvalidOptionsYAML(t *testing.T) {
	fd, err := parseSchema()
	if err != nil {
		t.Fatal(err)
	}
	md := fd.GetServices()[0].FindMethodByName("Translate")

	req := dynamic.NewMessage(md.GetInputType())
	req.SetFieldByName("source", `{"kind":"nil","line":1}`)
	req.SetFieldByName("options_yaml", "file: [unterminated")

	svc := New(config.Defaults(), nil)
	_, err = svc.handleTranslate(context.Background(), md, req)
	if err == nil {
		t.Fatal("expected an error for malformed options_yaml")
	}
}
