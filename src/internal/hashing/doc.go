// Package hashing provides MD5 checksum utilities.
//
// Downloaded source bodies are read through a ChecksumReaderProxy so their
// checksum is known without a second pass, and the set of dangerous entries a
// user is asked to confirm is fingerprinted with ChecksumStringSetProxy, so a
// confirmation only applies to the exact entries that were shown.
//
//	proxy := hashing.NewMD5ReaderProxy(resp.Body)
//	body, _ := io.ReadAll(proxy)
//	sum, _ := proxy.GetChecksum()
package hashing
