// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

/*
Package sfdd defines a concrete type for Set-Family Decision Diagrams (SFDD),
a data structure used to represent families of finite sets over an ordered
key domain as a shared, canonical directed acyclic graph.

Basics

An SFDD is built from a Factory, which is parameterized over a key type K by
a pair of caller-supplied functions: a strict order (less) and a hash. Every
node minted by a Factory is canonical: two nodes built from the same
(key, take, skip) triple are always the same Node, so structural equality
reduces to pointer equality. This is hash-consing, sometimes called a
"unicity table".

Nodes denote families of finite sets. The zero node denotes the empty family
{}. The one node denotes the family {∅} containing only the empty set. An
internal node ⟨t, take, skip⟩ denotes { {t} ∪ s | s ∈ take } ∪ skip.

Automatic memory management

Like the BDD libraries this package descends from, we piggyback on the
garbage collection mechanism of the host language. A Factory's unique tables
hold nodes and homomorphisms through weak.Pointer values: an entry does not
keep its target alive, so a node with no remaining external or structural
reference is reclaimed by the ordinary Go garbage collector, and the unique
table simply stops resolving to it on the next lookup. There is no
reference-counting or finalizer bookkeeping to get wrong, and no cycles can
arise: the ordering invariant on take/skip makes every diagram acyclic by
construction.

Homomorphisms

A Homomorphism is a function on nodes, built from the primitives Insert,
Remove, Filter, Dive and Inductive and the combinators Identity, Constant,
Union, Intersection, Composition and FixedPoint. Homomorphism instances are
themselves hash-consed, and each instance carries its own per-input
application cache. The Optimize function performs a single rewrite pass over
a homomorphism tree that introduces Dive prefixes and reorders runs of
Insert/Remove by descent depth, without changing the function it computes.
*/
package sfdd
