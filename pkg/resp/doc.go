// Package resp implements the subset of the Redis serialization protocol
// spoken by kvmesh.
//
// Requests are arrays of bulk strings:
//
//	*<N>\r\n $<len>\r\n<bytes>\r\n ... (N times)
//
// Replies are one of:
//
//	+<text>\r\n            SimpleString
//	$<len>\r\n<bytes>\r\n  BulkString
//	$-1\r\n                BulkString (null)
//	-<message>\r\n         Error
//
// The package has no state. Server code uses ReadCommand and WriteReply,
// the client uses WriteRequest and ReadReply. Decode, Encode and
// EncodeRequest are the byte-slice forms of the same operations.
package resp
