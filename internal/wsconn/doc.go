// Package wsconn implements the WebSocket transport to a remote debugger.
//
// A Dialer opens a Conn to the socket URL found by discovery. The Conn
// delivers inbound text frames verbatim on a channel and writes outbound
// frames as single text messages. Binary frames are ignored.
package wsconn
