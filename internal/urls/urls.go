package urls

// Documentation and service URLs shown to users in hints and headers.

// Repository is the project home.
const Repository = "https://github.com/muurk/buscacep"

// Issues is where users report unexpected directory responses.
const Issues = Repository + "/issues"

// ServiceDocs documents the ViaCEP API, including its rate limits
// and the "erro" response for unknown codes.
const ServiceDocs = "https://viacep.com.br/"

// CorreiosSearch is the postal service's own lookup, for codes the
// directory does not know.
const CorreiosSearch = "https://buscacepinter.correios.com.br/"
