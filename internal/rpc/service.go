// Package rpc serves translation over gRPC, exactly the way the
// teacher pack's internal/evaluator/builtins_grpc.go turns a runtime-
// parsed .proto file into a live *grpc.ServiceDesc without ever
// invoking protoc: this module owns one fixed schema (schema.go),
// parses it once at Register time with protoreflect's protoparse, and
// drives every call through jhump/protoreflect's dynamic.Message
// instead of hand-authored *.pb.go types.
package rpc

import (
	"context"
	"fmt"

	"github.com/jhump/protoreflect/desc"
	"github.com/jhump/protoreflect/desc/protoparse"
	"github.com/jhump/protoreflect/dynamic"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/ivylang/ivyc/internal/ast"
	"github.com/ivylang/ivyc/internal/backend"
	"github.com/ivylang/ivyc/internal/cache"
	"github.com/ivylang/ivyc/internal/config"
	"github.com/ivylang/ivyc/internal/diagnostics"
	"github.com/ivylang/ivyc/internal/session"
	"github.com/ivylang/ivyc/internal/yamlconfig"
)

const schemaFile = "ivyc.proto"

// CodegenService answers TranslateRequest RPCs by running the same
// pipeline the CLI's `translate` subcommand runs: decode sexp JSON,
// invoke a backend.Backend, report diagnostics on failure.
type CodegenService struct {
	Cache *cache.Cache // optional; nil disables the cache lookup
	Base  config.Options
}

// New builds a CodegenService. base supplies the Options every request
// is overlaid onto (per-request options_yaml wins field-by-field).
func New(base config.Options, c *cache.Cache) *CodegenService {
	return &CodegenService{Cache: c, Base: base}
}

// parseSchema parses schemaProto in memory — no file on disk, no
// protoc — and returns the CodegenService's FileDescriptor.
func parseSchema() (*desc.FileDescriptor, error) {
	parser := protoparse.Parser{
		Accessor: protoparse.FileContentsFromMap(map[string]string{
			schemaFile: schemaProto,
		}),
	}
	fds, err := parser.ParseFiles(schemaFile)
	if err != nil {
		return nil, fmt.Errorf("parse rpc schema: %w", err)
	}
	return fds[0], nil
}

// ServiceDesc builds the *grpc.ServiceDesc for CodegenService, the
// dynamic-dispatch analog of what protoc-gen-go-grpc would otherwise
// generate, grounded on builtinGrpcRegister's hand-built ServiceDesc.
func (s *CodegenService) ServiceDesc() (*grpc.ServiceDesc, error) {
	fd, err := parseSchema()
	if err != nil {
		return nil, err
	}
	sd := fd.GetServices()[0]
	md := sd.FindMethodByName("Translate")

	handler := func(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpc.UnaryServerInterceptor) (interface{}, error) {
		req := dynamic.NewMessage(md.GetInputType())
		if err := dec(req); err != nil {
			return nil, err
		}
		return srv.(*CodegenService).handleTranslate(ctx, md, req)
	}

	return &grpc.ServiceDesc{
		ServiceName: sd.GetFullyQualifiedName(),
		HandlerType: (*interface{})(nil),
		Methods: []grpc.MethodDesc{
			{MethodName: "Translate", Handler: handler},
		},
		Metadata: schemaFile,
	}, nil
}

func (s *CodegenService) handleTranslate(_ context.Context, md *desc.MethodDescriptor, req *dynamic.Message) (*dynamic.Message, error) {
	corrID := session.New()
	source := []byte(req.GetFieldByName("source").(string))
	optsYAML := req.GetFieldByName("options_yaml").(string)

	opts, err := yamlconfig.Overlay([]byte(optsYAML), s.Base)
	if err != nil {
		return nil, fmt.Errorf("session %s: invalid options_yaml: %w", corrID, err)
	}

	resp := dynamic.NewMessage(md.GetOutputType())

	if s.Cache != nil {
		if key, kerr := cache.Key(source, opts); kerr == nil {
			if out, ok, gerr := s.Cache.Get(key); gerr == nil && ok {
				resp.SetFieldByName("output", out)
				s.setMeta(resp, corrID, true)
				return resp, nil
			}
		}
	}

	root, err := ast.Decode(source)
	if err != nil {
		resp.SetFieldByName("diagnostics", []interface{}{
			fmt.Sprintf("%s :%s:0", err.Error(), opts.File),
		})
		s.setMeta(resp, corrID, false)
		return resp, nil
	}

	b := backend.New(opts)
	output, err := b.Translate(root)
	if err != nil {
		msg := err.Error()
		if d, ok := err.(*diagnostics.Diagnostic); ok {
			d.Session = corrID
			msg = d.Error()
		}
		resp.SetFieldByName("diagnostics", []interface{}{msg})
		s.setMeta(resp, corrID, false)
		return resp, nil
	}

	resp.SetFieldByName("output", output)
	if s.Cache != nil {
		if key, kerr := cache.Key(source, opts); kerr == nil {
			_ = s.Cache.Put(key, output)
		}
	}
	s.setMeta(resp, corrID, false)
	return resp, nil
}

// setMeta attaches the correlation id and cache-hit flag as a
// google.protobuf.Struct, the one field of the schema backed directly
// by structpb rather than a scalar.
func (s *CodegenService) setMeta(resp *dynamic.Message, corrID string, cacheHit bool) {
	meta, err := structpb.NewStruct(map[string]interface{}{
		"session":   corrID,
		"cache_hit": cacheHit,
	})
	if err != nil {
		return
	}
	resp.SetFieldByName("meta", meta)
}
