/*
Package cfgid provides the identifiers that tie configuration blocks to the
objects they generate.

Two kinds of identifier exist:

  - ID names one declared object, e.g. `living_room_temp`. It carries the
    C++ type the object is declared with and whether the user wrote the
    name (manual) or the loader made one up (auto).
  - Kind is the discriminator of a block, a dot-separated `domain` or
    `domain.platform` path such as `sensor.dht`.

Parsing and validation of both live here so every loader enforces the
same rules.
*/
package cfgid
