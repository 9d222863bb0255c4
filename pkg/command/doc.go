/*
Package command holds the request contract shared by every Slapdash command.

A request is processed in four steps:

 1. Extract reads the declared configuration headers, the drill-down
    parameter and the "keywords" query parameter into a Request.
 2. Classify picks a Mode from what is present: NeedsConfig when the
    required header is missing, DetailMode when the drill-down parameter is
    set, ListMode otherwise.
 3. Execute calls Configure, List or Detail on the Command.
 4. Errors are handed to the command's Fail method, which maps them to an
    envelope: a configuration form for rejected credentials, a toast or a
    message for everything else.

Handler adapts a Command to net/http. Every response is a well-formed
envelope with status 200, Access-Control-Allow-Origin "*" and the
configuration header names in Access-Control-Allow-Headers.

Commands that issue several upstream calls join them with Join (fixed
arity) or Each (per-item fan-out). The first failure cancels the rest.
*/
package command
