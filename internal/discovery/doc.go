// Package discovery resolves a debugger's WebSocket endpoint over HTTP.
//
// Remote debuggers in the V8 inspector family publish their debuggable
// targets at http://<host>:<port>/json:
//
//	[
//	  {
//	    "id": "0b5f8a1e-...",
//	    "type": "node",
//	    "title": "index.js",
//	    "url": "file:///app/index.js",
//	    "webSocketDebuggerUrl": "ws://127.0.0.1:9229/0b5f8a1e-..."
//	  }
//	]
//
// The Discoverer fetches that list and returns the first target's socket URL.
package discovery
