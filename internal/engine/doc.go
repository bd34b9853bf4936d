// Package engine runs one generation pass over a list of configuration
// blocks.
//
// A pass goes through these stages:
//
//  1. Dispatch. Every block kind is looked up in the registry. Unknown kinds
//     are collected and reported together before anything runs.
//  2. Naming. Manual ids are reserved in the symbol table; blocks without an
//     id get a unique name derived from their C++ type.
//  3. Decoding. Each block body is decoded with its entry's schema. A block
//     that fails to decode still gets a routine, which fails at once, so its
//     dependants are skipped instead of reported as unresolved.
//  4. Scheduling. One routine per block runs on the scheduler in block order.
//  5. Aggregation. Fatal errors, block failures and skipped blocks become one
//     *PassError. A pass with no errors yields an *Output.
package engine
