package components

// captureRuntimeInit asks an already-loaded capture runtime to wire any
// widgets the current render added. The runtime itself ships separately as
// the renderer's runtime script; this snippet is a no-op until it loads.
const captureRuntimeInit = `(function () {
  if (window.Camgen && typeof window.Camgen.scan === "function") {
    window.Camgen.scan(document);
  }
})();`
