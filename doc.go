/*
Package jointbank defines the common interfaces that join the jointbank
subpackages together, as well as the simpler building blocks that do not
deserve a package on their own (addresses, conditions, time, results).

A request travels from the ABCI application through a chain of decorators
down to a handler. All request scoped information is carried by a Context.
For every value of type T that is kept in the Context there are two
functions:

  WithXYZ(Context, T) Context
  GetXYZ(Context) (val T, ok bool)

WithXYZ panics if the value was already set, so that a lower level component
cannot overwrite information declared by the block (height, header, chain
id).
*/
package jointbank
