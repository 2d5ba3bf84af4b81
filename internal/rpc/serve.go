package rpc

import (
	"fmt"
	"net"

	"google.golang.org/grpc"
)

// Serve registers svc on a new *grpc.Server and blocks, serving on
// lis, the way builtinGrpcServe drives the teacher's hand-built
// ServiceDesc. Serve returns only the error that ends the accept loop;
// callers that need to stop the server use NewServer instead.
func Serve(lis net.Listener, svc *CodegenService) error {
	srv, err := NewServer(svc)
	if err != nil {
		return err
	}
	return srv.Serve(lis)
}

// NewServer registers svc and returns the *grpc.Server without
// starting it, for callers that need to control the accept loop
// themselves; Serve is built on it.
func NewServer(svc *CodegenService) (*grpc.Server, error) {
	desc, err := svc.ServiceDesc()
	if err != nil {
		return nil, fmt.Errorf("build service descriptor: %w", err)
	}
	srv := grpc.NewServer()
	srv.RegisterService(desc, svc)
	return srv, nil
}
