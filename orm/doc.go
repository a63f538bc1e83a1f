/*
Package orm provides an easy to use db wrapper

Break state space into prefixed sections called Buckets.
* Each bucket contains only one type of model.
* Models are protobuf messages, serialized with gogo/protobuf.
* Easy queries for one and iteration over a prefix.

A Sequence is a persisted counter that is used to assign identifiers.
*/
package orm
