package rpc

// schemaProto is this module's one RPC surface, described as .proto
// text and parsed at process start with protoparse — never run through
// protoc, never checked in as generated Go. Grounded on the teacher
// pack's internal/evaluator/builtins_grpc.go, which does the same
// runtime parse-and-serve for user-supplied .proto files; here the
// schema is simply fixed and owned by this module instead of supplied
// by a script at runtime.
const schemaProto = `
syntax = "proto3";

package ivyc;

import "google/protobuf/struct.proto";

message TranslateRequest {
  string source = 1;
  string options_yaml = 2;
}

message TranslateResponse {
  string output = 1;
  repeated string diagnostics = 2;
  google.protobuf.Struct meta = 3;
}

service CodegenService {
  rpc Translate(TranslateRequest) returns (TranslateResponse);
}
`
