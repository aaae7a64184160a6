// Package chain parses interface selector strings into configuration
// chains. A selector such as "telnet{port=4212},none" names a preferred
// implementation ("telnet") with options, followed by fallback entries
// whose meaning is left to the component that owns the chain.
package chain
