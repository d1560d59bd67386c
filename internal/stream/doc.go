// Package stream reads the line-oriented event protocol a triangulation
// producer writes to the viewer's standard input.
//
// The stream starts with a two-line header:
//
//	<title>
//	<minX> <maxX> <minY> <maxY>
//
// followed by one command per line:
//
//	t <millis>                   elapsed time
//	time: <seconds> [...]        elapsed time, as printed by the mesh producer
//	+ <ax> <ay> <bx> <by>        insert edge
//	- <ax> <ay> <bx> <by>        remove edge
//
// Lines starting with any other character are ignored. Coordinates follow a
// two-character prefix: the command character and one separator.
//
// The value after "time:" is always seconds, because that is what the mesh
// producer prints ("time: 0.25 0.1 (label)"). Older viewers read that token
// as integer milliseconds, so "time: 1500" meant 1.5s there and means 1500s
// here. Producers that count milliseconds should emit "t 1500".
package stream
