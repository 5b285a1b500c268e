package live

// ClientScriptName is the path the client script is served under and the
// name the site builder references.
const ClientScriptName = "lightpack.js"

// ClientScript forwards widget and scroll events to /ws/live and applies the
// returned fragments. It holds no widget state of its own.
const ClientScript = `(function () {
  "use strict";
  var proto = location.protocol === "https:" ? "wss://" : "ws://";
  var ws = new WebSocket(proto + location.host + "/ws/live?page=" + encodeURIComponent(location.pathname));
  var queued = [];

  function send(msg) {
    if (ws.readyState === 1) ws.send(JSON.stringify(msg));
    else queued.push(msg);
  }

  function layout() {
    var toc = document.querySelector("[data-lp-toc]");
    if (!toc) return;
    var offsets = {};
    toc.querySelectorAll("a[href^='#']").forEach(function (a) {
      var h = document.getElementById(decodeURIComponent(a.hash.slice(1)));
      if (h) offsets[h.id] = h.getBoundingClientRect().top + window.scrollY;
    });
    send({type: "scroll", y: window.scrollY});
    send({type: "layout", offsets: offsets});
  }

  ws.onopen = function () {
    queued.splice(0).forEach(send);
    layout();
  };

  ws.onmessage = function (ev) {
    var p = JSON.parse(ev.data);
    if (p.type !== "patch") return;
    Object.keys(p.fragments || {}).forEach(function (id) {
      var el = document.querySelector('[data-lp-group="' + id + '"]');
      if (!el) return;
      el.outerHTML = p.fragments[id];
      var fresh = document.querySelector('[data-lp-group="' + id + '"] .modal');
      if (fresh) fresh.focus();
    });
    document.body.style.overflow = p.locked ? "hidden" : "";
    if (p.toc) {
      var toc = document.querySelector("[data-lp-toc]");
      if (toc) toc.outerHTML = p.toc;
    }
    if (p.scroll) window.scrollTo({top: p.scroll.top, behavior: p.scroll.behavior});
    else if (p.href) location.href = p.href;
  };

  document.addEventListener("click", function (e) {
    var t = e.target;
    var el;
    if ((el = t.closest("[data-lp-index]"))) {
      var group = el.closest("[data-lp-group]");
      if (group) send({type: "activate", group: group.getAttribute("data-lp-group"), index: +el.getAttribute("data-lp-index")});
    } else if ((el = t.closest("[data-lp-open]"))) {
      send({type: "activate", group: el.getAttribute("data-lp-open"), index: 0});
    } else if ((el = t.closest("[data-lp-close]"))) {
      send({type: "close", group: el.getAttribute("data-lp-close")});
    } else if ((el = t.closest(".drawer-backdrop[data-lp-backdrop]")) ||
               (t.hasAttribute && t.hasAttribute("data-lp-backdrop") && (el = t))) {
      send({type: "backdrop", group: el.getAttribute("data-lp-backdrop")});
    } else if ((el = t.closest("[data-lp-theme-toggle]"))) {
      fetch("/api/theme/toggle", {method: "POST", credentials: "same-origin"})
        .then(function (r) { return r.json(); })
        .then(function (b) { document.body.classList.toggle("theme-dark", b.theme === "theme-dark"); });
    } else if ((el = t.closest("[data-lp-toc] a[href^='#']"))) {
      e.preventDefault();
      send({type: "navigate", href: el.getAttribute("href")});
    }
  });

  document.addEventListener("keydown", function (e) {
    if (e.key === "Escape") send({type: "escape"});
  });
  window.addEventListener("scroll", function () {
    send({type: "scroll", y: window.scrollY});
  }, {passive: true});
  window.addEventListener("resize", layout);
})();
`
